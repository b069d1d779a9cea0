package domain

// ClusterProfile describes a climate/air-quality cluster produced by the offline K-Means analysis
type ClusterProfile struct {
	Name            string   `json:"name"`
	Icon            string   `json:"icon"`
	Color           string   `json:"color"`
	BackgroundColor string   `json:"background_color"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	Recommendations []string `json:"recommendations"`
}

// UnclassifiedCluster is the profile used for names the table does not know
const UnclassifiedCluster = "Não Classificado"

// Keys match the cluster_name values in the dataset.
var clusterProfiles = map[string]ClusterProfile{
	"Clima Temperado Equilibrado": {
		Icon:            "partly-sunny-outline",
		Color:           "#3498DB",
		BackgroundColor: "#EBF5FB",
		Description:     "Moderate, balanced climate with pleasant temperatures, balanced humidity and good pollutant dispersion. Air quality is usually favourable with acceptable PM2.5 levels.",
		Characteristics: []string{
			"Mean temperatures between 15-25°C",
			"Balanced relative humidity (40-70%)",
			"Mean PM2.5 between 20-30 µg/m³",
			"Good visibility (>8 km)",
			"Moderate winds help dispersion",
			"Precipitation varies through the year",
		},
		Recommendations: []string{
			"Conditions favour outdoor activities",
			"Watch the index on dry days",
			"Keep an eye on seasonal changes",
			"Keep healthy exercise habits",
			"Continue sustainability practices",
			"Check forecasts to plan activities",
		},
	},
	"Ambiente de Alta Visibilidade e Pureza": {
		Icon:            "eye-outline",
		Color:           "#27AE60",
		BackgroundColor: "#EAFAF1",
		Description:     "Regions with excellent air quality, high visibility and very low pollution, usually with little industry and good air circulation.",
		Characteristics: []string{
			"Very low PM2.5 (<15 µg/m³)",
			"Excellent visibility (≥10 km)",
			"Consistently clean air",
			"Low pollutant concentration",
			"Ideal atmospheric conditions",
			"Air quality better than WHO guidelines",
		},
		Recommendations: []string{
			"Suitable for every activity",
			"Enjoy outdoor exercise",
			"Keep preserving the environment",
			"Promote local sustainable practices",
			"Share good environmental practices",
			"Stay vigilant to keep the quality",
		},
	},
	"Regiao de Alta Dispersao Eolica": {
		Icon:            "thunderstorm-outline",
		Color:           "#F39C12",
		BackgroundColor: "#FEF5E7",
		Description:     "Regions with strong, constant winds that disperse pollutants quickly. Emissions may exist, but fast air renewal keeps quality acceptable.",
		Characteristics: []string{
			"Strong, constant winds (>15 km/h)",
			"Fast pollutant dispersion",
			"Moderate PM2.5 despite emissions",
			"Rapid swings in air quality",
			"Low particle retention",
			"Dynamic, changing conditions",
		},
		Recommendations: []string{
			"Take advantage of windy periods",
			"Beware of dust and suspended particles",
			"Protect eyes and airways on very windy days",
			"Follow rapid changes in conditions",
			"Avoid activities on still days",
			"Use suitable outdoor protection",
		},
	},
	"Zona Industrial com Alta Retencao": {
		Icon:            "business-outline",
		Color:           "#E74C3C",
		BackgroundColor: "#FADBD8",
		Description:     "High pollutant concentration from intense industrial or urban activity combined with conditions that hinder dispersion (low wind, high humidity). Needs constant monitoring.",
		Characteristics: []string{
			"High PM2.5 (>30 µg/m³)",
			"High pollutant retention",
			"Poor atmospheric dispersion",
			"Weak or absent winds",
			"Frequently reduced visibility",
			"Regularly compromised air quality",
		},
		Recommendations: []string{
			"Avoid intense outdoor exercise",
			"Wear protective masks (N95/PFF2)",
			"Keep indoor spaces ventilated with filters",
			"Check air quality daily",
			"Take special care of vulnerable groups",
			"See a doctor if respiratory symptoms appear",
			"Support emission control policies",
		},
	},
	UnclassifiedCluster: {
		Icon:            "help-circle-outline",
		Color:           "#95A5A6",
		BackgroundColor: "#F2F3F4",
		Description:     "Regions that do not fit the identified patterns or have unique traits that need individual assessment. May indicate insufficient data or atypical climate.",
		Characteristics: []string{
			"Unique or variable climate pattern",
			"Insufficient data for classification",
			"Traits not captured by the clusters",
			"Needs detailed individual analysis",
			"Possibly atypical conditions",
			"Under monitoring",
		},
		Recommendations: []string{
			"Follow the region's own data",
			"Watch for system updates",
			"Check local air quality indexes",
			"Use the daily records as reference",
			"Report local observations if possible",
			"Wait for classification with more data",
		},
	},
}

// ClusterInfo returns the profile for a cluster name, falling back to the unclassified profile.
// The returned profile always carries the requested name.
func ClusterInfo(name string) ClusterProfile {
	p, ok := clusterProfiles[name]
	if !ok {
		p = clusterProfiles[UnclassifiedCluster]
	}
	p.Name = name
	if name == "" {
		p.Name = UnclassifiedCluster
	}
	return p
}

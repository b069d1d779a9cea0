package domain

// DayRecord is a single daily snapshot kept for a city (best or worst day of the year)
type DayRecord struct {
	Date   string  `json:"date"`
	PM25   float64 `json:"pm25"`
	Temp   float64 `json:"temp"`
	Hum    float64 `json:"hum"`
	Wind   float64 `json:"wind"`
	Precip float64 `json:"precip"`
	Vis    float64 `json:"vis"`
	EPA    int     `json:"epa"`
}

// CityRecord represents one monitored city from the static dataset
type CityRecord struct {
	LocationName string    `json:"location_name"`
	Country      string    `json:"country"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	MeanPM25     float64   `json:"mean_pm25_2025"`
	ClusterName  string    `json:"cluster_name"`
	BestDay      DayRecord `json:"best_day"`
	WorstDay     DayRecord `json:"worst_day"`
}

// CitySummary is the list-row view of a city
type CitySummary struct {
	LocationName string   `json:"location_name"`
	Country      string   `json:"country"`
	ClusterName  string   `json:"cluster_name,omitempty"`
	MeanPM25     float64  `json:"mean_pm25_2025"`
	Band         PM25Band `json:"pm25_band"`
	IsFavorite   bool     `json:"is_favorite"`
}

// DayReport pairs a day snapshot with its resolved EPA category
type DayReport struct {
	DayRecord
	Category EPACategory `json:"epa_category"`
}

// CityReport is the full detail view of a city
type CityReport struct {
	LocationName string         `json:"location_name"`
	Country      string         `json:"country"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	MeanPM25     float64        `json:"mean_pm25_2025"`
	Band         PM25Band       `json:"pm25_band"`
	Cluster      ClusterProfile `json:"cluster"`
	WorstDay     DayReport      `json:"worst_day"`
	BestDay      DayReport      `json:"best_day"`
	IsFavorite   bool           `json:"is_favorite"`
}

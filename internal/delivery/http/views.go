package http

import (
	"github.com/wellbreathe/backend/internal/domain"
	"github.com/wellbreathe/backend/pkg/utils"
)

// toSummary builds a list row; the band is picked from the unrounded mean
func toSummary(r domain.CityRecord, favorite bool) domain.CitySummary {
	return domain.CitySummary{
		LocationName: r.LocationName,
		Country:      r.Country,
		ClusterName:  r.ClusterName,
		MeanPM25:     utils.RoundTo(r.MeanPM25, 2),
		Band:         domain.PM25BandFor(r.MeanPM25),
		IsFavorite:   favorite,
	}
}

func toReport(r domain.CityRecord, favorite bool) domain.CityReport {
	return domain.CityReport{
		LocationName: r.LocationName,
		Country:      r.Country,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		MeanPM25:     utils.RoundTo(r.MeanPM25, 2),
		Band:         domain.PM25BandFor(r.MeanPM25),
		Cluster:      domain.ClusterInfo(r.ClusterName),
		WorstDay:     toDayReport(r.WorstDay),
		BestDay:      toDayReport(r.BestDay),
		IsFavorite:   favorite,
	}
}

func toDayReport(d domain.DayRecord) domain.DayReport {
	return domain.DayReport{DayRecord: d, Category: domain.EPAInfo(d.EPA)}
}

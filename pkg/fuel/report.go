package fuel

import (
	"math"
	"sort"

	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

// DailyConsumption is the assumed national draw per fuel in liters/day used
// for autonomy estimates. Fixed placeholders, not derived from historical
// consumption.
var DailyConsumption = map[models.FuelType]float64{
	models.FuelEssence:    800_000,
	models.FuelGasoil:     1_200_000,
	models.FuelGPL:        150_000,
	models.FuelLubricants: 20_000,
}

type FuelTotals struct {
	Stock        float64 `json:"stock"`
	Capacity     float64 `json:"capacity"`
	AutonomyDays int     `json:"autonomy_days"`
}

type CompanySummary struct {
	CompanyID    uint                           `json:"company_id"`
	StationCount int                            `json:"station_count"`
	Critical     int                            `json:"critical_stations"`
	Totals       map[models.FuelType]FuelTotals `json:"totals"`
}

type Summary struct {
	StationCount int                            `json:"station_count"`
	Critical     int                            `json:"critical_stations"`
	National     map[models.FuelType]FuelTotals `json:"national"`
	Companies    []CompanySummary               `json:"companies"`
	ActiveAlerts int64                          `json:"active_alerts"`
}

func autonomyDays(stock float64, fuel models.FuelType) int {
	consumption := DailyConsumption[fuel]
	if consumption <= 0 {
		return 0
	}
	return int(math.Round(stock / consumption))
}

func emptyTotals() map[models.FuelType]FuelTotals {
	totals := make(map[models.FuelType]FuelTotals, len(DailyConsumption))
	for fuel := range DailyConsumption {
		totals[fuel] = FuelTotals{}
	}
	return totals
}

func accumulate(totals map[models.FuelType]FuelTotals, station *models.Station) {
	for fuel := range DailyConsumption {
		t := totals[fuel]
		t.Stock += station.Stock(fuel)
		t.Capacity += station.Capacity(fuel)
		totals[fuel] = t
	}
}

func finalize(totals map[models.FuelType]FuelTotals) {
	for fuel, t := range totals {
		t.AutonomyDays = autonomyDays(t.Stock, fuel)
		totals[fuel] = t
	}
}

// Summarize rolls scope-filtered stations up into per-company and national
// totals plus autonomy-day estimates. Total over its domain: an empty
// station set yields zero totals, never NaN. Stations are deduplicated by
// id before summing.
func Summarize(stations []models.Station) *Summary {
	seen := make(map[uint]bool, len(stations))
	deduped := common.Filter(stations, func(st models.Station) bool {
		if seen[st.ID] {
			return false
		}
		seen[st.ID] = true
		return true
	})

	summary := &Summary{
		StationCount: len(deduped),
		National:     emptyTotals(),
	}

	byCompany := common.Reducer(deduped,
		func(acc map[uint][]models.Station, st models.Station) map[uint][]models.Station {
			acc[st.CompanyID] = append(acc[st.CompanyID], st)
			return acc
		},
		map[uint][]models.Station{},
	)

	for companyID, companyStations := range byCompany {
		cs := CompanySummary{
			CompanyID:    companyID,
			StationCount: len(companyStations),
			Totals:       emptyTotals(),
		}
		for i := range companyStations {
			st := &companyStations[i]
			accumulate(cs.Totals, st)
			accumulate(summary.National, st)
			if StationBand(st) == BandCritical {
				cs.Critical++
				summary.Critical++
			}
		}
		finalize(cs.Totals)
		summary.Companies = append(summary.Companies, cs)
	}

	finalize(summary.National)

	sort.Slice(summary.Companies, func(i, j int) bool {
		return summary.Companies[i].CompanyID < summary.Companies[j].CompanyID
	})

	return summary
}

func (m *Monitor) summarize(scope Scope) (*Summary, error) {
	if !scope.AllowsAggregation() {
		// station operators (and unassigned accounts) see an empty summary,
		// not an error
		return &Summary{National: emptyTotals()}, nil
	}

	var stations []models.Station
	if err := scope.FilterStations(m.Db.Conn).Find(&stations).Error; err != nil {
		return nil, err
	}

	summary := Summarize(stations)

	if m.Alert != nil {
		active, err := m.Alert.ActiveCount(scope)
		if err != nil {
			return nil, err
		}
		summary.ActiveAlerts = active
	}

	return summary, nil
}

type IReportImpl struct {
	mon *Monitor
}

func (ir *IReportImpl) Summarize(scope Scope) (*Summary, error) {
	return ir.mon.summarize(scope)
}

func (m *Monitor) GetIReport() IReport {
	return &IReportImpl{mon: m}
}

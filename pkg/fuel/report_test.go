package fuel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naftwatch.dz/fuel-monitor-service/pkg/common"
	. "naftwatch.dz/fuel-monitor-service/pkg/fuel"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
	_ "naftwatch.dz/fuel-monitor-service/pkg/testing"
)

func TestSummarizeEmptyStationSet(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.StationCount)
	assert.Empty(t, summary.Companies)
	for fuel, totals := range summary.National {
		assert.Zerof(t, totals.Stock, "stock for %s", fuel)
		assert.Zerof(t, totals.Capacity, "capacity for %s", fuel)
		// zero, never NaN
		assert.Equal(t, 0, totals.AutonomyDays)
	}
}

func TestSummarizeNationalAutonomy(t *testing.T) {
	// two companies with essence stocks 75000L and 8000L against a national
	// draw of 800000L/day: autonomy rounds to 0 days, not NaN
	stations := []models.Station{
		{ID: 1, CompanyID: 1, StockEssence: 75000, CapacityEssence: 100000},
		{ID: 2, CompanyID: 2, StockEssence: 8000, CapacityEssence: 85000},
	}

	summary := Summarize(stations)

	national := summary.National[models.FuelEssence]
	assert.Equal(t, 83000.0, national.Stock)
	assert.Equal(t, 0, national.AutonomyDays)

	require.Len(t, summary.Companies, 2)
	assert.Equal(t, 75000.0, summary.Companies[0].Totals[models.FuelEssence].Stock)
	assert.Equal(t, 8000.0, summary.Companies[1].Totals[models.FuelEssence].Stock)
}

func TestSummarizeAutonomyRounding(t *testing.T) {
	stations := []models.Station{
		// 2.4M L of essence at 800k/day -> 3 days
		{ID: 1, CompanyID: 1, StockEssence: 2_400_000, CapacityEssence: 3_000_000},
	}

	summary := Summarize(stations)
	assert.Equal(t, 3, summary.National[models.FuelEssence].AutonomyDays)
}

func TestSummarizeDeduplicatesStations(t *testing.T) {
	station := models.Station{ID: 1, CompanyID: 1, StockEssence: 10000, CapacityEssence: 85000}

	summary := Summarize([]models.Station{station, station, station})

	assert.Equal(t, 1, summary.StationCount)
	assert.Equal(t, 10000.0, summary.National[models.FuelEssence].Stock)
}

func TestSummarizeCountsCriticalStations(t *testing.T) {
	stations := []models.Station{
		{ID: 1, CompanyID: 1, StockEssence: 5000, CapacityEssence: 85000, StockGasoil: 40000, CapacityGasoil: 85000},
		{ID: 2, CompanyID: 1, StockEssence: 40000, CapacityEssence: 85000, StockGasoil: 40000, CapacityGasoil: 85000},
		{ID: 3, CompanyID: 2, StockEssence: 40000, CapacityEssence: 85000, StockGasoil: 1000, CapacityGasoil: 85000},
	}

	summary := Summarize(stations)

	assert.Equal(t, 2, summary.Critical)
	require.Len(t, summary.Companies, 2)
	assert.Equal(t, 1, summary.Companies[0].Critical)
	assert.Equal(t, 1, summary.Companies[1].Critical)
}

func TestSummarizeServiceScopes(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	companyA := seedCompany(t, mon)
	companyB := seedCompany(t, mon)
	stationA := seedStation(t, mon, companyA.ID, 5000, 85000, 40000, 85000)
	seedStation(t, mon, companyB.ID, 40000, 85000, 40000, 85000)
	require.NoError(t, mon.Alert.Reconcile(&stationA))

	managerScope := Scope{Role: models.RoleCompanyManager, CompanyID: &companyA.ID}
	managerSummary, err := mon.Report.Summarize(managerScope)
	require.NoError(t, err)
	// only company A stations and alerts are aggregated
	for _, cs := range managerSummary.Companies {
		assert.Equal(t, companyA.ID, cs.CompanyID)
	}
	assert.Equal(t, int64(1), managerSummary.ActiveAlerts)

	operatorScope := Scope{Role: models.RoleStationOperator, StationID: &stationA.ID}
	operatorSummary, err := mon.Report.Summarize(operatorScope)
	require.NoError(t, err)
	// empty summary, not an error
	assert.Equal(t, 0, operatorSummary.StationCount)
	assert.Empty(t, operatorSummary.Companies)
	assert.Equal(t, int64(0), operatorSummary.ActiveAlerts)
}

package fuel_test

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"naftwatch.dz/fuel-monitor-service/pkg/db"
	. "naftwatch.dz/fuel-monitor-service/pkg/fuel"
	"naftwatch.dz/fuel-monitor-service/pkg/fuel/mocks"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

func GetMockMonitorWithMemorySqliteDialector(t *testing.T, useMockIStock, useMockIAlert, useMockIReport bool) (
	*gomock.Controller,
	*Monitor,
	*mocks.MockIStock,
	*mocks.MockIAlert,
	*mocks.MockIReport,
) {
	ctrl := gomock.NewController(t)

	mockIStock := mocks.NewMockIStock(ctrl)
	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockIReport := mocks.NewMockIReport(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	monitor := &Monitor{Db: *dbInstance, Bus: NewBus()}

	stockService := monitor.GetIStock()
	if useMockIStock {
		stockService = mockIStock
	}

	alertService := monitor.GetIAlert()
	if useMockIAlert {
		alertService = mockIAlert
	}

	reportService := monitor.GetIReport()
	if useMockIReport {
		reportService = mockIReport
	}

	monitor.WithServices(ServiceOpts{
		Stock:  stockService,
		Alert:  alertService,
		Report: reportService,
	})

	return ctrl, monitor, mockIStock, mockIAlert, mockIReport
}

func seedCompany(t *testing.T, mon *Monitor) models.Company {
	t.Helper()
	company := models.Company{Name: "company-" + uuid.NewString()}
	require.NoError(t, mon.Db.Conn.Create(&company).Error)
	return company
}

func seedStation(t *testing.T, mon *Monitor, companyID uint, stockEssence, capEssence, stockGasoil, capGasoil float64) models.Station {
	t.Helper()
	station := models.Station{
		CompanyID:       companyID,
		Name:            "station-" + uuid.NewString(),
		Region:          "Alger",
		City:            "Alger",
		Status:          models.StationOpen,
		StockEssence:    stockEssence,
		CapacityEssence: capEssence,
		StockGasoil:     stockGasoil,
		CapacityGasoil:  capGasoil,
	}
	require.NoError(t, mon.Db.Conn.Create(&station).Error)
	return station
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

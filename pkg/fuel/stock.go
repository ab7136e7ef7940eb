package fuel

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

// StockReport is one tank-level reading for a station, all fuels at once.
type StockReport struct {
	Timestamp  time.Time
	Essence    float64
	Gasoil     float64
	GPL        float64
	Lubricants float64
}

func (r *StockReport) validate() error {
	for name, v := range map[string]float64{
		"essence":    r.Essence,
		"gasoil":     r.Gasoil,
		"gpl":        r.GPL,
		"lubricants": r.Lubricants,
	} {
		if v < 0 {
			return fmt.Errorf("negative %s stock %.2f", name, v)
		}
	}
	return nil
}

func (m *Monitor) reportStock(stationID uint, input *StockReport) (*models.Station, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFuelCore,
		zap.String(common.LoggerFieldFuelCategory, common.LoggerCategoryStock),
	)

	if err := input.validate(); err != nil {
		return nil, err
	}

	var station models.Station
	if err := m.Db.Conn.First(&station, stationID).Error; err != nil {
		return nil, err
	}

	logger.Info("Received stock report for station",
		zap.Uint("station_id", stationID), zap.Reflect("report", input))

	station.StockEssence = input.Essence
	station.StockGasoil = input.Gasoil
	station.StockGPL = input.GPL
	station.StockLubricants = input.Lubricants
	if !input.Timestamp.IsZero() {
		reportedAt := input.Timestamp
		station.LastReportAt = &reportedAt
	}

	if err := m.Db.Conn.Save(&station).Error; err != nil {
		return nil, err
	}

	logger.Info("Saved stock report for station", zap.Reflect("station", station))

	m.publish(ChangeEvent{
		Table:     TableStations,
		Op:        OpUpdate,
		ID:        station.ID,
		Timestamp: station.UpdatedAt,
		Station:   &station,
	})

	if m.Alert == nil {
		return nil, fmt.Errorf("alert service not available")
	}

	if err := m.Alert.Reconcile(&station); err != nil {
		return nil, err
	}

	return &station, nil
}

type IStockImpl struct {
	mon *Monitor
}

func (is *IStockImpl) ReportStock(stationID uint, input *StockReport) (*models.Station, error) {
	return is.mon.reportStock(stationID, input)
}

func (m *Monitor) GetIStock() IStock {
	return &IStockImpl{mon: m}
}

package fuel

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

const systemResolver = "system"

var stockAlertTypes = []models.AlertType{
	models.AlertTypeStockCritical,
	models.AlertTypeStockWarning,
}

func stockAlertFor(band Band) (models.AlertType, models.Severity, bool) {
	switch band {
	case BandCritical:
		return models.AlertTypeStockCritical, models.SeverityCritique, true
	case BandWarning:
		return models.AlertTypeStockWarning, models.SeverityAlerte, true
	}
	return "", "", false
}

// Reconcile aligns the open stock alerts of a station with its current
// tank levels: one open alert at most per (station, fuel, type), breached
// fuels gain an alert, recovered fuels get theirs auto-resolved.
func (m *Monitor) reconcile(station *models.Station) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFuelCore,
		zap.String(common.LoggerFieldFuelCategory, common.LoggerCategoryAlert),
	)

	db := m.Db.Conn

	for _, f := range models.TrackedFuels {
		stock := station.Stock(f)
		capacity := station.Capacity(f)
		band := Classify(stock, capacity)
		wantType, severity, breached := stockAlertFor(band)

		var open []models.Alert
		if err := db.
			Where("station_id = ? AND carburant = ? AND type IN ? AND resolu = ?",
				station.ID, f, stockAlertTypes, false).
			Find(&open).Error; err != nil {
			return err
		}

		covered := false
		for i := range open {
			if breached && open[i].Type == wantType && !covered {
				// already alerted at this severity, keep it
				covered = true
				continue
			}
			// recovered, superseded by another severity, or a duplicate
			// from a concurrent writer
			if err := m.closeAlert(&open[i], systemResolver); err != nil {
				return err
			}
		}

		if !breached || covered {
			continue
		}

		pct := 0.0
		if capacity > 0 {
			pct = stock / capacity * 100
		}
		alert := models.Alert{
			StationID: &station.ID,
			CompanyID: &station.CompanyID,
			Fuel:      f,
			Type:      wantType,
			Severity:  severity,
			Message:   fmt.Sprintf("%s stock %.0fL is %.1f%% of capacity %.0fL", f, stock, pct, capacity),
		}

		logger.Info("Alert found", zap.Reflect("alert", alert))

		if err := db.Create(&alert).Error; err != nil {
			return err
		}

		logger.Info("Alert saved", zap.Reflect("alert", alert))

		m.publish(ChangeEvent{
			Table:     TableAlerts,
			Op:        OpInsert,
			ID:        alert.ID,
			Timestamp: alert.UpdatedAt,
			Alert:     &alert,
		})
	}

	return nil
}

func (m *Monitor) closeAlert(alert *models.Alert, resolver string) error {
	now := time.Now()
	err := m.Db.Conn.Model(alert).Updates(map[string]any{
		"resolu":     true,
		"resolu_at":  now,
		"resolu_par": resolver,
	}).Error
	if err != nil {
		return fmt.Errorf("%w: alert %d: %v", ErrResolveFailed, alert.ID, err)
	}

	alert.Resolved = true
	alert.ResolvedAt = &now
	alert.ResolvedBy = &resolver

	m.publish(ChangeEvent{
		Table:     TableAlerts,
		Op:        OpUpdate,
		ID:        alert.ID,
		Timestamp: alert.UpdatedAt,
		Alert:     alert,
	})
	return nil
}

// Resolve transitions an open alert to resolved. Resolving an already
// resolved alert is an idempotent no-op; a missing id is ErrAlertNotFound.
func (m *Monitor) resolveAlert(alertID uint, resolver string) error {
	var alert models.Alert
	if err := m.Db.Conn.First(&alert, alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrAlertNotFound, alertID)
		}
		return fmt.Errorf("%w: %v", ErrResolveFailed, err)
	}

	if alert.Resolved {
		return nil
	}

	if err := m.closeAlert(&alert, resolver); err != nil {
		return err
	}

	common.GetLoggerWith(
		common.LoggerNameFuelCore,
		zap.String(common.LoggerFieldFuelCategory, common.LoggerCategoryAlert),
	).Info("Alert resolved", zap.Uint("alert_id", alertID), zap.String("resolver", resolver))

	return nil
}

// Reopen transitions a resolved alert back to open, clearing the resolver
// identity and timestamp. Reopening an open alert is a no-op.
func (m *Monitor) reopenAlert(alertID uint) error {
	var alert models.Alert
	if err := m.Db.Conn.First(&alert, alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrAlertNotFound, alertID)
		}
		return fmt.Errorf("%w: %v", ErrReopenFailed, err)
	}

	if !alert.Resolved {
		return nil
	}

	err := m.Db.Conn.Model(&alert).Updates(map[string]any{
		"resolu":     false,
		"resolu_at":  nil,
		"resolu_par": nil,
	}).Error
	if err != nil {
		return fmt.Errorf("%w: alert %d: %v", ErrReopenFailed, alertID, err)
	}

	alert.Resolved = false
	alert.ResolvedAt = nil
	alert.ResolvedBy = nil

	m.publish(ChangeEvent{
		Table:     TableAlerts,
		Op:        OpUpdate,
		ID:        alert.ID,
		Timestamp: alert.UpdatedAt,
		Alert:     &alert,
	})

	common.GetLoggerWith(
		common.LoggerNameFuelCore,
		zap.String(common.LoggerFieldFuelCategory, common.LoggerCategoryAlert),
	).Info("Alert reopened", zap.Uint("alert_id", alertID))

	return nil
}

// Priority scores an alert for display ranking: resolved alerts sink to 0,
// open critique outranks open alerte.
func Priority(a *models.Alert) int {
	if a.Resolved {
		return 0
	}
	if a.Severity == models.SeverityCritique {
		return 3
	}
	return 1
}

// Rank returns a copy of alerts ordered by descending priority, ties broken
// by most recent creation first. Pure and stable: equal inputs produce
// equal output order, and re-ranking a ranked list changes nothing.
func Rank(alerts []models.Alert) []models.Alert {
	ranked := make([]models.Alert, len(alerts))
	copy(ranked, alerts)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := Priority(&ranked[i]), Priority(&ranked[j])
		if pi != pj {
			return pi > pj
		}
		if !ranked[i].CreatedAt.Equal(ranked[j].CreatedAt) {
			return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
		}
		return ranked[i].ID > ranked[j].ID
	})
	return ranked
}

func (m *Monitor) listAlerts(scope Scope) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := scope.FilterAlerts(m.Db.Conn).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return Rank(alerts), nil
}

func (m *Monitor) stationAlerts(stationID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := m.Db.Conn.
		Where("station_id = ?", stationID).
		Order("created_at desc").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return Rank(alerts), nil
}

func (m *Monitor) activeCount(scope Scope) (int64, error) {
	var count int64
	err := scope.FilterAlerts(m.Db.Conn.Model(&models.Alert{})).
		Where("resolu = ?", false).
		Count(&count).Error
	return count, err
}

type IAlertImpl struct {
	mon *Monitor
}

func (ia *IAlertImpl) Reconcile(station *models.Station) error {
	return ia.mon.reconcile(station)
}

func (ia *IAlertImpl) Resolve(alertID uint, resolver string) error {
	return ia.mon.resolveAlert(alertID, resolver)
}

func (ia *IAlertImpl) Reopen(alertID uint) error {
	return ia.mon.reopenAlert(alertID)
}

func (ia *IAlertImpl) ListAlerts(scope Scope) ([]models.Alert, error) {
	return ia.mon.listAlerts(scope)
}

func (ia *IAlertImpl) StationAlerts(stationID uint) ([]models.Alert, error) {
	return ia.mon.stationAlerts(stationID)
}

func (ia *IAlertImpl) ActiveCount(scope Scope) (int64, error) {
	return ia.mon.activeCount(scope)
}

func (m *Monitor) GetIAlert() IAlert {
	return &IAlertImpl{mon: m}
}

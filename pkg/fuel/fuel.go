package fuel

import (
	"naftwatch.dz/fuel-monitor-service/pkg/db"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

type IStock interface {
	ReportStock(stationID uint, input *StockReport) (*models.Station, error)
}

type IAlert interface {
	Reconcile(station *models.Station) error
	Resolve(alertID uint, resolver string) error
	Reopen(alertID uint) error
	ListAlerts(scope Scope) ([]models.Alert, error)
	StationAlerts(stationID uint) ([]models.Alert, error)
	ActiveCount(scope Scope) (int64, error)
}

type IReport interface {
	Summarize(scope Scope) (*Summary, error)
}

// Monitor is the aggregate the servers are built around: the store, the
// change bus feeding live views, and the swappable service implementations.
type Monitor struct {
	Db     db.DB
	Bus    *Bus
	Stock  IStock
	Alert  IAlert
	Report IReport
}

type ServiceOpts struct {
	Stock  IStock
	Alert  IAlert
	Report IReport
}

func (m *Monitor) WithServices(opts ServiceOpts) *Monitor {
	if opts.Stock != nil {
		m.Stock = opts.Stock
	}
	if opts.Alert != nil {
		m.Alert = opts.Alert
	}
	if opts.Report != nil {
		m.Report = opts.Report
	}
	return m
}

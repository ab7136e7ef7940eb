// Package mocks contains gomock mocks for the fuel service interfaces.
//
// Keep in sync with pkg/fuel/fuel.go when interfaces change.
package mocks

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
	fuel "naftwatch.dz/fuel-monitor-service/pkg/fuel"
	models "naftwatch.dz/fuel-monitor-service/pkg/models"
)

// MockIStock is a mock of IStock interface.
type MockIStock struct {
	ctrl     *gomock.Controller
	recorder *MockIStockMockRecorder
}

// MockIStockMockRecorder is the mock recorder for MockIStock.
type MockIStockMockRecorder struct {
	mock *MockIStock
}

// NewMockIStock creates a new mock instance.
func NewMockIStock(ctrl *gomock.Controller) *MockIStock {
	mock := &MockIStock{ctrl: ctrl}
	mock.recorder = &MockIStockMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIStock) EXPECT() *MockIStockMockRecorder {
	return m.recorder
}

// ReportStock mocks base method.
func (m *MockIStock) ReportStock(stationID uint, input *fuel.StockReport) (*models.Station, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReportStock", stationID, input)
	ret0, _ := ret[0].(*models.Station)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReportStock indicates an expected call of ReportStock.
func (mr *MockIStockMockRecorder) ReportStock(stationID, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReportStock", reflect.TypeOf((*MockIStock)(nil).ReportStock), stationID, input)
}

// MockIAlert is a mock of IAlert interface.
type MockIAlert struct {
	ctrl     *gomock.Controller
	recorder *MockIAlertMockRecorder
}

// MockIAlertMockRecorder is the mock recorder for MockIAlert.
type MockIAlertMockRecorder struct {
	mock *MockIAlert
}

// NewMockIAlert creates a new mock instance.
func NewMockIAlert(ctrl *gomock.Controller) *MockIAlert {
	mock := &MockIAlert{ctrl: ctrl}
	mock.recorder = &MockIAlertMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIAlert) EXPECT() *MockIAlertMockRecorder {
	return m.recorder
}

// Reconcile mocks base method.
func (m *MockIAlert) Reconcile(station *models.Station) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reconcile", station)
	ret0, _ := ret[0].(error)
	return ret0
}

// Reconcile indicates an expected call of Reconcile.
func (mr *MockIAlertMockRecorder) Reconcile(station any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reconcile", reflect.TypeOf((*MockIAlert)(nil).Reconcile), station)
}

// Resolve mocks base method.
func (m *MockIAlert) Resolve(alertID uint, resolver string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Resolve", alertID, resolver)
	ret0, _ := ret[0].(error)
	return ret0
}

// Resolve indicates an expected call of Resolve.
func (mr *MockIAlertMockRecorder) Resolve(alertID, resolver any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Resolve", reflect.TypeOf((*MockIAlert)(nil).Resolve), alertID, resolver)
}

// Reopen mocks base method.
func (m *MockIAlert) Reopen(alertID uint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reopen", alertID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Reopen indicates an expected call of Reopen.
func (mr *MockIAlertMockRecorder) Reopen(alertID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reopen", reflect.TypeOf((*MockIAlert)(nil).Reopen), alertID)
}

// ListAlerts mocks base method.
func (m *MockIAlert) ListAlerts(scope fuel.Scope) ([]models.Alert, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAlerts", scope)
	ret0, _ := ret[0].([]models.Alert)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAlerts indicates an expected call of ListAlerts.
func (mr *MockIAlertMockRecorder) ListAlerts(scope any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAlerts", reflect.TypeOf((*MockIAlert)(nil).ListAlerts), scope)
}

// StationAlerts mocks base method.
func (m *MockIAlert) StationAlerts(stationID uint) ([]models.Alert, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StationAlerts", stationID)
	ret0, _ := ret[0].([]models.Alert)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StationAlerts indicates an expected call of StationAlerts.
func (mr *MockIAlertMockRecorder) StationAlerts(stationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StationAlerts", reflect.TypeOf((*MockIAlert)(nil).StationAlerts), stationID)
}

// ActiveCount mocks base method.
func (m *MockIAlert) ActiveCount(scope fuel.Scope) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ActiveCount", scope)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ActiveCount indicates an expected call of ActiveCount.
func (mr *MockIAlertMockRecorder) ActiveCount(scope any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ActiveCount", reflect.TypeOf((*MockIAlert)(nil).ActiveCount), scope)
}

// MockIReport is a mock of IReport interface.
type MockIReport struct {
	ctrl     *gomock.Controller
	recorder *MockIReportMockRecorder
}

// MockIReportMockRecorder is the mock recorder for MockIReport.
type MockIReportMockRecorder struct {
	mock *MockIReport
}

// NewMockIReport creates a new mock instance.
func NewMockIReport(ctrl *gomock.Controller) *MockIReport {
	mock := &MockIReport{ctrl: ctrl}
	mock.recorder = &MockIReportMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIReport) EXPECT() *MockIReportMockRecorder {
	return m.recorder
}

// Summarize mocks base method.
func (m *MockIReport) Summarize(scope fuel.Scope) (*fuel.Summary, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Summarize", scope)
	ret0, _ := ret[0].(*fuel.Summary)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Summarize indicates an expected call of Summarize.
func (mr *MockIReportMockRecorder) Summarize(scope any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Summarize", reflect.TypeOf((*MockIReport)(nil).Summarize), scope)
}

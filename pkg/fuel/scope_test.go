package fuel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naftwatch.dz/fuel-monitor-service/pkg/auth"
	"naftwatch.dz/fuel-monitor-service/pkg/common"
	. "naftwatch.dz/fuel-monitor-service/pkg/fuel"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
	_ "naftwatch.dz/fuel-monitor-service/pkg/testing"
)

func TestResolveScopeNationalAdmin(t *testing.T) {
	scope := ResolveScope(auth.Claims{Role: models.RoleNationalAdmin})

	assert.False(t, scope.IsEmpty())
	assert.True(t, scope.AllowsStation(&models.Station{ID: 1, CompanyID: 9}))
	assert.True(t, scope.AllowsCompany(12345))
	assert.True(t, scope.AllowsAggregation())
}

func TestResolveScopeCompanyManager(t *testing.T) {
	companyID := uint(7)
	scope := ResolveScope(auth.Claims{Role: models.RoleCompanyManager, CompanyID: &companyID})

	assert.False(t, scope.IsEmpty())
	assert.True(t, scope.AllowsStation(&models.Station{ID: 1, CompanyID: 7}))
	assert.False(t, scope.AllowsStation(&models.Station{ID: 2, CompanyID: 8}))
	assert.True(t, scope.AllowsCompany(7))
	assert.False(t, scope.AllowsCompany(8))
	assert.True(t, scope.AllowsAggregation())

	other := uint(8)
	alertOther := models.Alert{CompanyID: &other}
	assert.False(t, scope.AllowsAlert(&alertOther))
}

func TestResolveScopeStationOperator(t *testing.T) {
	stationID := uint(3)
	scope := ResolveScope(auth.Claims{Role: models.RoleStationOperator, StationID: &stationID})

	assert.False(t, scope.IsEmpty())
	assert.True(t, scope.AllowsStation(&models.Station{ID: 3, CompanyID: 7}))
	assert.False(t, scope.AllowsStation(&models.Station{ID: 4, CompanyID: 7}))
	// company and national roll-ups are inaccessible, not an error
	assert.False(t, scope.AllowsAggregation())
	assert.False(t, scope.AllowsCompany(7))
}

// An account with a role but no affiliation must see nothing, never default
// to national visibility.
func TestResolveScopeUnassignedManagerIsEmpty(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	company := seedCompany(t, mon)
	station := seedStation(t, mon, company.ID, 5000, 85000, 40000, 85000)
	require.NoError(t, mon.Alert.Reconcile(&station))

	scope := ResolveScope(auth.Claims{Role: models.RoleCompanyManager}) // no company id
	assert.True(t, scope.IsEmpty())

	var stations []models.Station
	require.NoError(t, scope.FilterStations(mon.Db.Conn).Find(&stations).Error)
	assert.Empty(t, stations)

	alerts, err := mon.Alert.ListAlerts(scope)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	assert.False(t, scope.AllowsStation(&station))
	assert.False(t, scope.AllowsCompany(company.ID))
}

func TestResolveScopeUnassignedOperatorIsEmpty(t *testing.T) {
	scope := ResolveScope(auth.Claims{Role: models.RoleStationOperator})
	assert.True(t, scope.IsEmpty())
	assert.False(t, scope.AllowsStation(&models.Station{ID: 1}))
}

func TestResolveScopeUnknownRoleIsEmpty(t *testing.T) {
	scope := ResolveScope(auth.Claims{})
	assert.True(t, scope.IsEmpty())
	assert.False(t, scope.AllowsStation(&models.Station{ID: 1}))
	assert.False(t, scope.AllowsAggregation())
}

func TestFilterStationsByScope(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, mon, _, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	companyA := seedCompany(t, mon)
	companyB := seedCompany(t, mon)
	stationA1 := seedStation(t, mon, companyA.ID, 40000, 85000, 40000, 85000)
	stationA2 := seedStation(t, mon, companyA.ID, 40000, 85000, 40000, 85000)
	stationB1 := seedStation(t, mon, companyB.ID, 40000, 85000, 40000, 85000)

	managerScope := Scope{Role: models.RoleCompanyManager, CompanyID: &companyA.ID}
	var managerSees []models.Station
	require.NoError(t, managerScope.FilterStations(mon.Db.Conn).
		Where("id IN ?", []uint{stationA1.ID, stationA2.ID, stationB1.ID}).
		Find(&managerSees).Error)
	assert.Len(t, managerSees, 2)

	operatorScope := Scope{Role: models.RoleStationOperator, StationID: &stationB1.ID}
	var operatorSees []models.Station
	require.NoError(t, operatorScope.FilterStations(mon.Db.Conn).
		Where("id IN ?", []uint{stationA1.ID, stationA2.ID, stationB1.ID}).
		Find(&operatorSees).Error)
	require.Len(t, operatorSees, 1)
	assert.Equal(t, stationB1.ID, operatorSees[0].ID)
}

func TestCheckMutationGates(t *testing.T) {
	companyID := uint(7)
	manager := Scope{Role: models.RoleCompanyManager, CompanyID: &companyID}

	assert.NoError(t, manager.CheckCompanyMutation(7))
	assert.ErrorIs(t, manager.CheckCompanyMutation(8), ErrScopeViolation)

	stationID := uint(3)
	operator := Scope{Role: models.RoleStationOperator, StationID: &stationID}
	assert.NoError(t, operator.CheckStationMutation(&models.Station{ID: 3}))
	assert.ErrorIs(t, operator.CheckStationMutation(&models.Station{ID: 4}), ErrScopeViolation)
	assert.ErrorIs(t, operator.CheckCompanyMutation(7), ErrScopeViolation)

	admin := Scope{Role: models.RoleNationalAdmin}
	assert.NoError(t, admin.CheckCompanyMutation(8))
}

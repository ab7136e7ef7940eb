package fuel

import (
	"gorm.io/gorm"
	"naftwatch.dz/fuel-monitor-service/pkg/auth"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

// Scope is the single authorization surface: every read filter and every
// write gate derives from it. It is fixed for the lifetime of a session.
type Scope struct {
	Role      models.Role
	CompanyID *uint
	StationID *uint
}

// ResolveScope computes a user's scope from their session claims. A role
// missing its affiliation id collapses to empty access: an unassigned
// account must never inherit broader visibility.
func ResolveScope(claims auth.Claims) Scope {
	switch claims.Role {
	case models.RoleNationalAdmin:
		return Scope{Role: claims.Role}
	case models.RoleCompanyManager:
		return Scope{Role: claims.Role, CompanyID: claims.CompanyID}
	case models.RoleStationOperator:
		return Scope{Role: claims.Role, StationID: claims.StationID}
	}
	return Scope{}
}

// IsEmpty reports whether the scope grants access to nothing.
func (s Scope) IsEmpty() bool {
	switch s.Role {
	case models.RoleNationalAdmin:
		return false
	case models.RoleCompanyManager:
		return s.CompanyID == nil
	case models.RoleStationOperator:
		return s.StationID == nil
	}
	return true
}

func (s Scope) AllowsStation(station *models.Station) bool {
	switch s.Role {
	case models.RoleNationalAdmin:
		return true
	case models.RoleCompanyManager:
		return s.CompanyID != nil && station.CompanyID == *s.CompanyID
	case models.RoleStationOperator:
		return s.StationID != nil && station.ID == *s.StationID
	}
	return false
}

func (s Scope) AllowsAlert(alert *models.Alert) bool {
	switch s.Role {
	case models.RoleNationalAdmin:
		return true
	case models.RoleCompanyManager:
		return s.CompanyID != nil && alert.CompanyID != nil && *alert.CompanyID == *s.CompanyID
	case models.RoleStationOperator:
		return s.StationID != nil && alert.StationID != nil && *alert.StationID == *s.StationID
	}
	return false
}

func (s Scope) AllowsCompany(companyID uint) bool {
	switch s.Role {
	case models.RoleNationalAdmin:
		return true
	case models.RoleCompanyManager:
		return s.CompanyID != nil && companyID == *s.CompanyID
	}
	return false
}

// AllowsAggregation reports whether company/national roll-up views are
// visible. Station operators get empty summaries, not errors.
func (s Scope) AllowsAggregation() bool {
	switch s.Role {
	case models.RoleNationalAdmin:
		return true
	case models.RoleCompanyManager:
		return s.CompanyID != nil
	}
	return false
}

// denyAll matches no rows.
func denyAll(tx *gorm.DB) *gorm.DB {
	return tx.Where("1 = 0")
}

// FilterStations narrows a stations query to the scope.
func (s Scope) FilterStations(tx *gorm.DB) *gorm.DB {
	switch s.Role {
	case models.RoleNationalAdmin:
		return tx
	case models.RoleCompanyManager:
		if s.CompanyID == nil {
			return denyAll(tx)
		}
		return tx.Where("company_id = ?", *s.CompanyID)
	case models.RoleStationOperator:
		if s.StationID == nil {
			return denyAll(tx)
		}
		return tx.Where("id = ?", *s.StationID)
	}
	return denyAll(tx)
}

// FilterAlerts narrows an alerts query to the scope.
func (s Scope) FilterAlerts(tx *gorm.DB) *gorm.DB {
	switch s.Role {
	case models.RoleNationalAdmin:
		return tx
	case models.RoleCompanyManager:
		if s.CompanyID == nil {
			return denyAll(tx)
		}
		return tx.Where("company_id = ?", *s.CompanyID)
	case models.RoleStationOperator:
		if s.StationID == nil {
			return denyAll(tx)
		}
		return tx.Where("station_id = ?", *s.StationID)
	}
	return denyAll(tx)
}

// CheckCompanyMutation gates a write touching the given company. Unlike the
// read filters, a failed check is a hard error.
func (s Scope) CheckCompanyMutation(companyID uint) error {
	if s.AllowsCompany(companyID) {
		return nil
	}
	return ErrScopeViolation
}

// CheckStationMutation gates a write touching the given station.
func (s Scope) CheckStationMutation(station *models.Station) error {
	if s.AllowsStation(station) {
		return nil
	}
	return ErrScopeViolation
}

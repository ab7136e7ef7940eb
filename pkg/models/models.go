package models

import "time"

type Role string

const (
	RoleNationalAdmin   Role = "national_admin"
	RoleCompanyManager  Role = "company_manager"
	RoleStationOperator Role = "station_operator"
)

type FuelType string

const (
	FuelEssence    FuelType = "essence"
	FuelGasoil     FuelType = "gasoil"
	FuelGPL        FuelType = "gpl"
	FuelLubricants FuelType = "lubrifiants"
)

// TrackedFuels are the fuels that participate in severity banding. GPL and
// lubricants are stored and aggregated but do not raise stock alerts.
var TrackedFuels = []FuelType{FuelEssence, FuelGasoil}

type StationStatus string

const (
	StationOpen        StationStatus = "open"
	StationClosed      StationStatus = "closed"
	StationMaintenance StationStatus = "maintenance"
	StationPending     StationStatus = "pending_validation"
)

type AlertType string

const (
	AlertTypeStockCritical AlertType = "stock_critical"
	AlertTypeStockWarning  AlertType = "stock_warning"
	AlertTypePriceAnomaly  AlertType = "price_anomaly"
	AlertTypeStationClosed AlertType = "station_closed"
)

type Severity string

const (
	SeverityCritique Severity = "critique"
	SeverityAlerte   Severity = "alerte"
)

type Company struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex" json:"name"`

	Stations []Station `gorm:"foreignKey:CompanyID" json:"-"`
}

type Station struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	CompanyID uint          `gorm:"index" json:"company_id"`
	Name      string        `json:"name"`
	Region    string        `json:"region"`
	City      string        `json:"city"`
	Status    StationStatus `gorm:"type:varchar(20);check:status IN ('open','closed','maintenance','pending_validation')" json:"status"`

	CapacityEssence    float64 `json:"capacity_essence"`
	StockEssence       float64 `json:"stock_essence"`
	CapacityGasoil     float64 `json:"capacity_gasoil"`
	StockGasoil        float64 `json:"stock_gasoil"`
	CapacityGPL        float64 `json:"capacity_gpl"`
	StockGPL           float64 `json:"stock_gpl"`
	CapacityLubricants float64 `json:"capacity_lubricants"`
	StockLubricants    float64 `json:"stock_lubricants"`

	// when the station last reported its tank levels, as stamped by the
	// reporter; UpdatedAt is the store's write time
	LastReportAt *time.Time `json:"last_report_at,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Station) Stock(fuel FuelType) float64 {
	switch fuel {
	case FuelEssence:
		return s.StockEssence
	case FuelGasoil:
		return s.StockGasoil
	case FuelGPL:
		return s.StockGPL
	case FuelLubricants:
		return s.StockLubricants
	}
	return 0
}

func (s *Station) Capacity(fuel FuelType) float64 {
	switch fuel {
	case FuelEssence:
		return s.CapacityEssence
	case FuelGasoil:
		return s.CapacityGasoil
	case FuelGPL:
		return s.CapacityGPL
	case FuelLubricants:
		return s.CapacityLubricants
	}
	return 0
}

// Alert keeps the column names of the legacy `alertes` table (resolu,
// resolu_at, resolu_par) so existing exports and reports keep working.
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StationID *uint     `gorm:"index" json:"station_id,omitempty"`
	CompanyID *uint     `gorm:"index" json:"company_id,omitempty"`
	Fuel      FuelType  `gorm:"type:varchar(20);column:carburant" json:"fuel,omitempty"`
	Type      AlertType `gorm:"type:varchar(20);check:type IN ('stock_critical','stock_warning','price_anomaly','station_closed')" json:"type"`
	Severity  Severity  `gorm:"type:varchar(10);check:severity IN ('critique','alerte')" json:"severity"`
	Message   string    `json:"message"`

	Resolved   bool       `gorm:"column:resolu" json:"resolved"`
	ResolvedAt *time.Time `gorm:"column:resolu_at" json:"resolved_at,omitempty"`
	ResolvedBy *string    `gorm:"column:resolu_par" json:"resolved_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Alert) TableName() string {
	return "alertes"
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `gorm:"type:varchar(20);check:role IN ('national_admin','company_manager','station_operator')" json:"role"`
	CompanyID    *uint  `json:"company_id,omitempty"`
	StationID    *uint  `json:"station_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

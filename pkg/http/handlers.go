package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"naftwatch.dz/fuel-monitor-service/pkg/auth"
	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/fuel"
	"naftwatch.dz/fuel-monitor-service/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func scopeFrom(c *gin.Context) fuel.Scope {
	return fuel.ResolveScope(auth.FromContext(c.Request.Context()))
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return uint(v), true
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var loginRequestSchema = z.Struct(z.Shape{
	"Email":    z.String().Required(),
	"Password": z.String().Required(),
})

func (rs *RestfulServer) Login(c *gin.Context) {
	var req LoginRequest
	if err := loginRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	var user models.User
	if err := rs.Monitor.Db.Conn.First(&user, "email = ?", req.Email).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.Sign(strconv.FormatUint(uint64(user.ID), 10), user.Role, user.CompanyID, user.StationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"role":       user.Role,
		"company_id": user.CompanyID,
		"station_id": user.StationID,
	})
}

// StationView decorates a station row with its derived severity bands; the
// bands are computed on read and never persisted.
type StationView struct {
	models.Station
	BandEssence string `json:"band_essence"`
	BandGasoil  string `json:"band_gasoil"`
	Band        string `json:"band"`
}

func stationView(st models.Station) StationView {
	return StationView{
		Station:     st,
		BandEssence: fuel.Classify(st.StockEssence, st.CapacityEssence).String(),
		BandGasoil:  fuel.Classify(st.StockGasoil, st.CapacityGasoil).String(),
		Band:        fuel.StationBand(&st).String(),
	}
}

func (rs *RestfulServer) ListStations(c *gin.Context) {
	scope := scopeFrom(c)

	var stations []models.Station
	if err := scope.FilterStations(rs.Monitor.Db.Conn).Find(&stations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, common.Mapper(stations, stationView))
}

type StockRequest struct {
	Timestamp  time.Time `json:"timestamp"`
	Essence    float64   `json:"essence"`
	Gasoil     float64   `json:"gasoil"`
	GPL        float64   `json:"gpl"`
	Lubricants float64   `json:"lubricants"`
}

var stockRequestSchema = z.Struct(z.Shape{
	"Timestamp":  z.Time().Required(),
	"Essence":    z.Float64().GTE(0).Required(),
	"Gasoil":     z.Float64().GTE(0).Required(),
	"GPL":        z.Float64().GTE(0),
	"Lubricants": z.Float64().GTE(0),
})

func (rs *RestfulServer) PostStock(c *gin.Context) {
	stationID, ok := paramUint(c, "station_id")
	if !ok {
		return
	}

	if !rs.CheckStationLimiter(stationID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req StockRequest
	if err := stockRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	var station models.Station
	if err := rs.Monitor.Db.Conn.First(&station, stationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := scopeFrom(c).CheckStationMutation(&station); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	updated, err := rs.Monitor.Stock.ReportStock(stationID, &fuel.StockReport{
		Timestamp:  req.Timestamp,
		Essence:    req.Essence,
		Gasoil:     req.Gasoil,
		GPL:        req.GPL,
		Lubricants: req.Lubricants,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stationView(*updated))
}

func (rs *RestfulServer) GetStationAlerts(c *gin.Context) {
	stationID, ok := paramUint(c, "station_id")
	if !ok {
		return
	}

	var station models.Station
	if err := rs.Monitor.Db.Conn.First(&station, stationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !scopeFrom(c).AllowsStation(&station) {
		c.JSON(http.StatusForbidden, gin.H{"error": fuel.ErrScopeViolation.Error()})
		return
	}

	alerts, err := rs.Monitor.Alert.StationAlerts(stationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) ListAlerts(c *gin.Context) {
	alerts, err := rs.Monitor.Alert.ListAlerts(scopeFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) loadScopedAlert(c *gin.Context) (*models.Alert, bool) {
	alertID, ok := paramUint(c, "alert_id")
	if !ok {
		return nil, false
	}

	var alert models.Alert
	if err := rs.Monitor.Db.Conn.First(&alert, alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fuel.ErrAlertNotFound.Error()})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	if !scopeFrom(c).AllowsAlert(&alert) {
		c.JSON(http.StatusForbidden, gin.H{"error": fuel.ErrScopeViolation.Error()})
		return nil, false
	}

	return &alert, true
}

func (rs *RestfulServer) ResolveAlert(c *gin.Context) {
	alert, ok := rs.loadScopedAlert(c)
	if !ok {
		return
	}

	resolver := auth.Subject(c.Request.Context())
	if err := rs.Monitor.Alert.Resolve(alert.ID, resolver); err != nil {
		if errors.Is(err, fuel.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) ReopenAlert(c *gin.Context) {
	alert, ok := rs.loadScopedAlert(c)
	if !ok {
		return
	}

	if err := rs.Monitor.Alert.Reopen(alert.ID); err != nil {
		if errors.Is(err, fuel.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetSummary(c *gin.Context) {
	summary, err := rs.Monitor.Report.Summarize(scopeFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID *uint  `json:"company_id"`
	StationID *uint  `json:"station_id"`
}

var createUserRequestSchema = z.Struct(z.Shape{
	"Email":    z.String().Required(),
	"Password": z.String().Min(8).Required(),
	"Role":     z.String().Required(),
})

var validRoles = map[models.Role]bool{
	models.RoleNationalAdmin:   true,
	models.RoleCompanyManager:  true,
	models.RoleStationOperator: true,
}

func (rs *RestfulServer) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := createUserRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	role := models.Role(req.Role)
	if !validRoles[role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	scope := scopeFrom(c)

	// creating a national admin is itself a national-level mutation
	if role == models.RoleNationalAdmin && scope.Role != models.RoleNationalAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": fuel.ErrScopeViolation.Error()})
		return
	}

	// the write gate: a manager can only staff their own company
	if req.CompanyID != nil {
		if err := scope.CheckCompanyMutation(*req.CompanyID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
	} else if scope.Role != models.RoleNationalAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": fuel.ErrScopeViolation.Error()})
		return
	}

	if req.StationID != nil {
		var station models.Station
		if err := rs.Monitor.Db.Conn.First(&station, *req.StationID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown station"})
			return
		}
		if err := scope.CheckStationMutation(&station); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CompanyID:    req.CompanyID,
		StationID:    req.StationID,
	}
	if err := rs.Monitor.Db.Conn.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	stationID, ok := paramUint(c, "station_id")
	if !ok {
		return
	}

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(stationID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

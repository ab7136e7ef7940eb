package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"naftwatch.dz/fuel-monitor-service/pkg/auth"
	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/db"
	"naftwatch.dz/fuel-monitor-service/pkg/fuel"
	fuelHttp "naftwatch.dz/fuel-monitor-service/pkg/http"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	fuelDbType := os.Getenv(common.EnvKeyFuelDBType)
	switch fuelDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown FUEL_DB_TYPE: " + fuelDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyFuelHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyFuelDefaultRate), 64); err != nil {
		log.Fatal("Invalid FUEL_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyFuelDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid FUEL_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	monitor := fuel.Monitor{
		Db:  *dbInstance,
		Bus: fuel.NewBus(),
	}
	monitor.WithServices(fuel.ServiceOpts{
		Stock:  monitor.GetIStock(),
		Alert:  monitor.GetIAlert(),
		Report: monitor.GetIReport(),
	})

	if err := bootstrapAdmin(dbInstance); err != nil {
		log.Fatalf("failed to bootstrap admin user: %v", err)
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &fuelHttp.RestfulServer{
		Server:           gin.Default(),
		Monitor:          &monitor,
		RateLimiterStore: fuel.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}

// bootstrapAdmin creates a national admin from FUEL_ADMIN_EMAIL and
// FUEL_ADMIN_PASSWORD when the users table is empty, so a fresh deployment
// has a way to log in and create the rest of the accounts.
func bootstrapAdmin(dbInstance *db.DB) error {
	email := strings.TrimSpace(os.Getenv(common.EnvKeyFuelAdminEmail))
	password := os.Getenv(common.EnvKeyFuelAdminPassword)
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := dbInstance.Conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleNationalAdmin,
	}
	return dbInstance.Conn.Create(&admin).Error
}

package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyFuelDBType string = "FUEL_DB_TYPE"
	EnvKeyFuelDbPath string = "FUEL_DB_PATH"

	EnvKeyFuelHttpHostPort string = "FUEL_HTTP_HOST_PORT"

	EnvKeyFuelDefaultRate  string = "FUEL_DEFAULT_RATE"
	EnvKeyFuelDefaultBurst string = "FUEL_DEFAULT_BURST"

	EnvKeyJwtSecret    string = "JWT_SECRET"
	EnvKeyJwtExpiresIn string = "JWT_EXPIRES_IN"

	EnvKeyFuelAdminEmail    string = "FUEL_ADMIN_EMAIL"
	EnvKeyFuelAdminPassword string = "FUEL_ADMIN_PASSWORD"

	LoggerNameFuelCore      string = "fuel_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameLiveHub       string = "live_hub"
	LoggerFieldFuelCategory string = "category"
	LoggerCategoryStock     string = "stock"
	LoggerCategoryAlert     string = "alert"
	LoggerCategoryScope     string = "scope"
	LoggerCategorySync      string = "sync"
	LoggerCategoryReport    string = "report"
)

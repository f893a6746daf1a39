package config

const (
	EnvPrefix = "stockyard"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "STOCKYARD_APP_ENV"
	EnvPort     = "STOCKYARD_APP_PORT"
	EnvDBDSN    = "STOCKYARD_DB_DSN"
	EnvDBHost   = "STOCKYARD_DB_HOST"
	EnvDBUser   = "STOCKYARD_DB_USER"
	EnvDBName   = "STOCKYARD_DB_NAME"
	EnvRedisURL = "STOCKYARD_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

// EnvPrefix is the envconfig prefix used when parsing the environment.
// Individual fields carry explicit SST_* names, so the prefix only matters
// for fields without one.
const EnvPrefix = "sst"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "SST_APP_ENV"
	EnvAppPort = "SST_APP_PORT"

	EnvDBDSN      = "SST_DB_DSN"
	EnvDBHost     = "SST_DB_HOST"
	EnvDBPort     = "SST_DB_PORT"
	EnvDBUser     = "SST_DB_USER"
	EnvDBPassword = "SST_DB_PASSWORD"
	EnvDBName     = "SST_DB_NAME"
	EnvDBSSLMode  = "SST_DB_SSLMODE"

	EnvRedisURL = "SST_REDIS_URL"

	EnvJWTSecret            = "SST_JWT_SECRET"
	EnvJWTIssuer            = "SST_JWT_ISSUER"
	EnvJWTExpirationMinutes = "SST_JWT_EXPIRATION_MINUTES"

	EnvSMTPHost      = "SST_SMTP_HOST"
	EnvSMTPUser      = "SST_SMTP_USER"
	EnvSMTPPass      = "SST_SMTP_PASS"
	EnvSMTPFromEmail = "SST_SMTP_FROM_EMAIL"

	EnvCloudinaryCloudName = "SST_CLOUDINARY_CLOUD_NAME"
	EnvCloudinaryAPIKey    = "SST_CLOUDINARY_API_KEY"
	EnvCloudinaryAPISecret = "SST_CLOUDINARY_API_SECRET"
)

// legacyDBEnvVars are the discrete connection variables accepted when
// SST_DB_DSN is not set. Password is optional for local setups.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	PasswordReset PasswordResetConfig
	SMTP          SMTPConfig
	Cloudinary    CloudinaryConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SST_APP_ENV" required:"true"`
	Port         string `envconfig:"SST_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"SST_APP_BASE_URL" default:"http://localhost:3000"`
	LogLevel     string `envconfig:"SST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SST_DB_DSN"`
	Driver string `envconfig:"SST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SST_DB_HOST"`
	LegacyPort     int    `envconfig:"SST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SST_DB_USER"`
	LegacyPassword string `envconfig:"SST_DB_PASSWORD"`
	LegacyName     string `envconfig:"SST_DB_NAME"`
	LegacySSLMode  string `envconfig:"SST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SST_REDIS_ADDR"`
	Password     string        `envconfig:"SST_REDIS_PASSWORD"`
	DB           int           `envconfig:"SST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SST_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SST_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SST_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SST_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SST_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SST_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SST_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SST_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SST_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SST_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SST_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SST_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SST_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SST_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SST_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	ResetWindow        time.Duration `envconfig:"SST_AUTH_RATE_LIMIT_RESET_WINDOW" default:"5m"`
	ResetEmailLimit    int           `envconfig:"SST_AUTH_RATE_LIMIT_RESET_EMAIL_LIMIT" default:"3"`
	ResetIPLimit       int           `envconfig:"SST_AUTH_RATE_LIMIT_RESET_IP_LIMIT" default:"10"`
}

type PasswordResetConfig struct {
	TokenTTL time.Duration `envconfig:"SST_PASSWORD_RESET_TOKEN_TTL" default:"30m"`
	Path     string        `envconfig:"SST_PASSWORD_RESET_PATH" default:"/reset-password"`
}

type SMTPConfig struct {
	Host      string `envconfig:"SST_SMTP_HOST"`
	Port      int    `envconfig:"SST_SMTP_PORT" default:"587"`
	User      string `envconfig:"SST_SMTP_USER"`
	Password  string `envconfig:"SST_SMTP_PASS"`
	FromEmail string `envconfig:"SST_SMTP_FROM_EMAIL"`
}

// Configured reports whether every credential needed to send mail is present.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.User != "" && s.Password != "" && s.FromEmail != ""
}

type CloudinaryConfig struct {
	CloudName string `envconfig:"SST_CLOUDINARY_CLOUD_NAME"`
	APIKey    string `envconfig:"SST_CLOUDINARY_API_KEY"`
	APISecret string `envconfig:"SST_CLOUDINARY_API_SECRET"`
}

// Configured reports whether the Cloudinary account credentials are present.
func (c CloudinaryConfig) Configured() bool {
	return c.ResolvedCloudName() != "" && c.APIKey != "" && c.APISecret != ""
}

// ResolvedCloudName tolerates a full cloudinary:// URL pasted into the cloud
// name variable and extracts the trailing cloud name from it.
func (c CloudinaryConfig) ResolvedCloudName() string {
	name := strings.TrimSpace(c.CloudName)
	if strings.HasPrefix(name, "cloudinary://") {
		if idx := strings.LastIndex(name, "@"); idx >= 0 {
			return strings.TrimSpace(name[idx+1:])
		}
		return ""
	}
	return name
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SST_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SST_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

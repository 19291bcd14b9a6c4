package configs

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ENV struct {
	Port    string `env:"PORT,default=5000"`
	AppEnv  string `env:"APP_ENV,default=development"`
	DataDir string `env:"DATA_DIR,default=."`
	// VolumePath wins over DataDir when the platform mounts a persistent volume.
	VolumePath string `env:"RAILWAY_VOLUME_MOUNT_PATH"`

	DBDriver   string `env:"DB_DRIVER,default=sqlite"`
	DBHost     string `env:"DB_HOST,default=127.0.0.1"`
	DBPort     string `env:"DB_PORT,default=3306"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,default=168h"`

	FrontendURL string `env:"FRONTEND_URL,default=*"`
	APIPrefix   string `env:"API_PREFIX,default=/api"`

	StorageDriver string `env:"STORAGE_DRIVER,default=local"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3PublicURL   string `env:"S3_PUBLIC_URL"`

	AdminUsername string `env:"ADMIN_USERNAME,default=web"`
	AdminPassword string `env:"ADMIN_PASSWORD,default=web12345"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE,default=10"`
	// TrustedProxyHops counts the reverse proxies that append to X-Forwarded-For.
	TrustedProxyHops int `env:"TRUSTED_PROXY_HOPS,default=0"`
}

// LoadEnv reads .env when present and decodes the process environment on top of the defaults.
func LoadEnv() (ENV, error) {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Debug("LoadEnv: no .env file found, using process environment")
	}

	var env ENV
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return ENV{}, fmt.Errorf("failed to decode environment: %w", err)
	}

	switch env.DBDriver {
	case "sqlite", "mysql":
	default:
		return ENV{}, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
	switch env.StorageDriver {
	case "local", "s3":
	default:
		return ENV{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", env.StorageDriver)
	}

	return env, nil
}

func (e ENV) ResolvedDataDir() string {
	if e.VolumePath != "" {
		return e.VolumePath
	}
	return e.DataDir
}

func (e ENV) UploadsDir() string {
	return filepath.Join(e.ResolvedDataDir(), "uploads")
}

func (e ENV) SQLitePath() string {
	return filepath.Join(e.ResolvedDataDir(), "database.sqlite")
}

func (e ENV) Addr() string {
	return ":" + e.Port
}

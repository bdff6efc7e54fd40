package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Upload   UploadConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

// RedisConfig is optional; an empty Addr disables token revocation.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type AdminConfig struct {
	Password string
}

type UploadConfig struct {
	Dir       string
	MaxSizeMB int64
}

type BookingConfig struct {
	OnlineCapacity   int
	PhysicalCapacity int
	StrictCapacity   bool
}

// MaxBytes returns the upload limit in bytes.
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxSizeMB << 20
}

// LoadConfig reads an optional env file at path and lets real environment
// variables override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "appointment-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("UPLOAD_DIR", "uploads/")
	v.SetDefault("UPLOAD_MAX_MB", 10)
	v.SetDefault("CAPACITY_ONLINE", 5)
	v.SetDefault("CAPACITY_PHYSICAL", 20)
	v.SetDefault("BOOKING_STRICT_CAPACITY", true)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Admin: AdminConfig{
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Upload: UploadConfig{
			Dir:       v.GetString("UPLOAD_DIR"),
			MaxSizeMB: v.GetInt64("UPLOAD_MAX_MB"),
		},
		Booking: BookingConfig{
			OnlineCapacity:   v.GetInt("CAPACITY_ONLINE"),
			PhysicalCapacity: v.GetInt("CAPACITY_PHYSICAL"),
			StrictCapacity:   v.GetBool("BOOKING_STRICT_CAPACITY"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if config.Booking.OnlineCapacity < 1 || config.Booking.PhysicalCapacity < 1 {
		return nil, fmt.Errorf("capacities must be positive")
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

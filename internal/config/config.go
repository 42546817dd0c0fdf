package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                 string
	Origin               string
	Environment          string
	LogLevel             string
	JWTSecret            string
	JWTExpirationMinutes int
	Admin                AdminConfig
	Studio               StudioConfig
	Storage              StorageConfig
	Database             DatabaseConfig
	Redis                RedisConfig
}

// AdminConfig holds the single admin login. It gates the admin screens only
// and is not meant as a real authentication model.
type AdminConfig struct {
	Username string
	Password string
}

// StudioConfig holds the booking catalog and calendar conventions.
type StudioConfig struct {
	Location  *time.Location
	TimeSlots []string
	Services  []string
	WeekStart time.Weekday
}

// StorageConfig selects the durable key-value backend.
type StorageConfig struct {
	Driver string
	Key    string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds redis connection details
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

const (
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

var slotPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "tattoo"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	redisConfig := RedisConfig{
		Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
		Password:  getEnv("REDIS_PASSWORD", ""),
		DB:        redisDB,
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", ""),
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	studio, err := loadStudio()
	if err != nil {
		return nil, err
	}

	storage := StorageConfig{
		Driver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMySQL)),
		Key:    getEnv("STORAGE_KEY", "tattoo-agendamentos"),
	}
	switch storage.Driver {
	case DriverMySQL, DriverRedis, DriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q", storage.Driver)
	}

	return &Config{
		Port:                 getEnv("PORT", "3001"),
		Origin:               getEnv("ORIGIN", "http://localhost:4200"),
		Environment:          getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "123456"),
		},
		Studio:   studio,
		Storage:  storage,
		Database: dbConfig,
		Redis:    redisConfig,
	}, nil
}

func loadStudio() (StudioConfig, error) {
	loc, err := time.LoadLocation(getEnv("STUDIO_TIMEZONE", "America/Sao_Paulo"))
	if err != nil {
		return StudioConfig{}, fmt.Errorf("invalid STUDIO_TIMEZONE: %w", err)
	}

	slots := splitList(getEnv("TIME_SLOTS", "09:00,10:00,11:00,14:00,15:00,16:00,17:00"))
	if len(slots) == 0 {
		return StudioConfig{}, fmt.Errorf("TIME_SLOTS must list at least one slot")
	}
	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		if !slotPattern.MatchString(s) {
			return StudioConfig{}, fmt.Errorf("invalid TIME_SLOTS entry %q: want HH:MM", s)
		}
		if seen[s] {
			return StudioConfig{}, fmt.Errorf("duplicate TIME_SLOTS entry %q", s)
		}
		seen[s] = true
	}

	services := splitList(getEnv("SERVICES", "Tatuagem Pequena,Tatuagem Média,Tatuagem Grande,Retoque,Consulta"))
	if len(services) == 0 {
		return StudioConfig{}, fmt.Errorf("SERVICES must list at least one service")
	}

	weekStart, err := ParseWeekday(getEnv("WEEK_START", "sunday"))
	if err != nil {
		return StudioConfig{}, fmt.Errorf("invalid WEEK_START: %w", err)
	}

	return StudioConfig{
		Location:  loc,
		TimeSlots: slots,
		Services:  services,
		WeekStart: weekStart,
	}, nil
}

// ParseWeekday accepts an English day name, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
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

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

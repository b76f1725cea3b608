package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPath        string
	RedisHost     string
	RedisPort     string
	SessionStore  string
	SessionSecret string
	GinMode       string
	OpenAIAPIKey  string
	Port          string
	APIPrefix     string
	RequireAuth   bool
	LogLevel      string
	LogFormat     string
	CORSOrigins   []string
}

// Load builds the configuration from defaults, an optional TOML file named by
// KANBAN_CONFIG, a .env file and the process environment, in increasing order
// of precedence.
func Load() (*Config, error) {
	// A missing .env is not an error
	_ = godotenv.Load()

	file := map[string]string{}
	if path := os.Getenv("KANBAN_CONFIG"); path != "" {
		var err error
		file, err = loadFile(path)
		if err != nil {
			return nil, err
		}
	}

	get := func(key, defaultValue string) string {
		if v, ok := file[key]; ok && v != "" {
			defaultValue = v
		}
		return getEnv(key, defaultValue)
	}

	return &Config{
		DBDriver:      strings.ToLower(get("DB_DRIVER", "mysql")),
		DBHost:        get("DB_HOST", "localhost"),
		DBPort:        get("DB_PORT", "3306"),
		DBUser:        get("DB_USER", "kanban"),
		DBPassword:    get("DB_PASSWORD", "kanbanpassword"),
		DBName:        get("DB_NAME", "kanban"),
		DBPath:        get("DB_PATH", "kanban.db"),
		RedisHost:     get("REDIS_HOST", "localhost"),
		RedisPort:     get("REDIS_PORT", "6379"),
		SessionStore:  strings.ToLower(get("SESSION_STORE", "cookie")),
		SessionSecret: get("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       get("GIN_MODE", "debug"),
		OpenAIAPIKey:  get("OPENAI_API_KEY", ""),
		Port:          get("PORT", "8080"),
		APIPrefix:     strings.TrimSuffix(get("API_PREFIX", "/api/v1"), "/"),
		RequireAuth:   getBool(get("REQUIRE_AUTH", "false")),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "console"),
		CORSOrigins:   splitList(get("CORS_ALLOWED_ORIGINS", "*")),
	}, nil
}

// loadFile reads a flat TOML document. Keys are matched case-insensitively
// against the environment variable names, so db_driver sets DB_DRIVER.
func loadFile(path string) (map[string]string, error) {
	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		name := strings.ToUpper(key)
		switch v := value.(type) {
		case []interface{}:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			values[name] = strings.Join(parts, ",")
		case map[string]interface{}:
			return nil, fmt.Errorf("config file %s: nested table %q is not supported", path, key)
		default:
			values[name] = fmt.Sprint(v)
		}
	}
	return values, nil
}

// DSN returns the driver-specific connection string
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	case "sqlite":
		return c.DBPath
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

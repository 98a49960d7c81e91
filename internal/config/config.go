package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every setting of the service.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Chat   ChatConfig
	Store  StoreConfig
	Login  LoginConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	login, err := loadLoginConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Log: logCfg, Chat: chat, Store: store, Login: login}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	origins := splitList(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port, CORSOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, CORSOrigins: origins}, nil
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string
	Development bool
}

func loadLogConfig() (LogConfig, error) {
	dev, err := parseBoolEnv("LOG_DEV", false)
	if err != nil {
		return LogConfig{}, err
	}
	return LogConfig{
		Level:       getEnvOrDefault("LOG_LEVEL", "info"),
		Development: dev,
	}, nil
}

// ChatConfig describes the "start a business" assistant.
type ChatConfig struct {
	TypingDelay time.Duration
	MaxTurns    int
	RulesFile   string
	MatchMode   string
}

func loadChatConfig() (ChatConfig, error) {
	delay := 1500 * time.Millisecond
	if ms, err := parseOptionalIntEnv("CHAT_TYPING_DELAY_MS"); err != nil {
		return ChatConfig{}, err
	} else if ms != nil {
		if *ms < 0 {
			return ChatConfig{}, fmt.Errorf("invalid CHAT_TYPING_DELAY_MS value %d: must not be negative", *ms)
		}
		delay = time.Duration(*ms) * time.Millisecond
	}

	maxTurns := 200
	if override, err := parseOptionalIntEnv("CHAT_MAX_TURNS"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 0 {
			maxTurns = 0
		} else {
			maxTurns = *override
		}
	}

	matchMode := strings.ToLower(getEnvOrDefault("CHAT_MATCH_MODE", "substring"))
	switch matchMode {
	case "substring", "word", "word-boundary", "wordboundary":
	default:
		return ChatConfig{}, fmt.Errorf("invalid CHAT_MATCH_MODE value %q: want substring or word", matchMode)
	}

	return ChatConfig{
		TypingDelay: delay,
		MaxTurns:    maxTurns,
		RulesFile:   strings.TrimSpace(os.Getenv("CHAT_RULES_FILE")),
		MatchMode:   matchMode,
	}, nil
}

// StoreConfig selects the session key-value backend. An empty RedisAddr
// keeps records in memory.
type StoreConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// RedisEnabled reports whether a Redis address was configured.
func (c StoreConfig) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func loadStoreConfig() (StoreConfig, error) {
	db := 0
	if override, err := parseOptionalIntEnv("REDIS_DB"); err != nil {
		return StoreConfig{}, err
	} else if override != nil {
		db = *override
	}

	ttl := 24 * time.Hour
	if minutes, err := parseOptionalIntEnv("REDIS_TTL_MINUTES"); err != nil {
		return StoreConfig{}, err
	} else if minutes != nil {
		ttl = time.Duration(*minutes) * time.Minute
	}

	return StoreConfig{
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       db,
		TTL:           ttl,
	}, nil
}

// LoginConfig bounds login attempts per client.
type LoginConfig struct {
	RPS   float64
	Burst int
}

func loadLoginConfig() (LoginConfig, error) {
	rps := 1.0
	if override, err := parseOptionalFloatEnv("LOGIN_RPS"); err != nil {
		return LoginConfig{}, err
	} else if override != nil {
		rps = *override
	}

	burst := 5
	if override, err := parseOptionalIntEnv("LOGIN_BURST"); err != nil {
		return LoginConfig{}, err
	} else if override != nil {
		burst = *override
	}

	return LoginConfig{RPS: rps, Burst: burst}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

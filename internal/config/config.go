package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// InsecureSessionSecret is used when no secret is configured. Never deploy with it.
const InsecureSessionSecret = "insecure-dev-session-secret-change-me"

// Config is the runtime configuration of the tracker service.
type Config struct {
	Addr        string
	DBPath      string
	LogLevel    string
	LogFormat   string
	Development bool
	Metrics     bool
	LoginRate   string
	// TrustedProxies are the reverse proxies allowed to set X-Forwarded-For.
	TrustedProxies []string
	Session        SessionConfig
	CORS           CORSConfig
	Argon2         Argon2Config
}

type SessionConfig struct {
	Name     string
	Secret   string
	MaxAge   int // seconds
	Secure   bool
	SameSite string // "none", "lax", "strict"
}

type CORSConfig struct {
	// AllowedOrigins lists origins allowed to make credentialed requests. "*"
	// reflects any origin. Empty disables CORS headers.
	AllowedOrigins []string
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

// Load reads TRACKER_* environment variables and, when TRACKER_CONFIG names a
// file, that file. Environment wins over file values.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("tracker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if p := os.Getenv("TRACKER_CONFIG"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
	}

	cfg := &Config{
		Addr:           v.GetString("addr"),
		DBPath:         v.GetString("db_path"),
		LogLevel:       v.GetString("log.level"),
		LogFormat:      v.GetString("log.format"),
		Development:    v.GetBool("development"),
		Metrics:        v.GetBool("metrics"),
		LoginRate:      v.GetString("login_rate"),
		TrustedProxies: splitList(v.GetStringSlice("trusted_proxies")),
		Session: SessionConfig{
			Name:     v.GetString("session.name"),
			Secret:   v.GetString("session.secret"),
			MaxAge:   v.GetInt("session.max_age"),
			Secure:   v.GetBool("session.secure"),
			SameSite: strings.ToLower(v.GetString("session.same_site")),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		},
		Argon2: Argon2Config{
			Memory:      uint32(v.GetInt("argon2.memory")),
			Iterations:  uint32(v.GetInt("argon2.iterations")),
			Parallelism: uint8(v.GetInt("argon2.parallelism")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8000")
	v.SetDefault("db_path", "data/tracker.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("development", false)
	v.SetDefault("metrics", true)
	v.SetDefault("login_rate", "10-M")
	v.SetDefault("trusted_proxies", []string{})
	v.SetDefault("session.name", "sessionid")
	v.SetDefault("session.secret", InsecureSessionSecret)
	v.SetDefault("session.max_age", 14*24*60*60)
	v.SetDefault("session.secure", true)
	v.SetDefault("session.same_site", "none")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("argon2.memory", 64*1024)
	v.SetDefault("argon2.iterations", 3)
	v.SetDefault("argon2.parallelism", 2)
}

func (c *Config) validate() error {
	switch c.Session.SameSite {
	case "none", "lax", "strict":
	default:
		return fmt.Errorf("invalid session.same_site %q", c.Session.SameSite)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q", c.LogFormat)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret must not be empty")
	}
	return nil
}

// SlogLevel converts LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// splitList accepts both list values and a single comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

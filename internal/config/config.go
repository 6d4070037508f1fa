package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SeedDemo  = "demo"
	SeedEmpty = "empty"
)

type Config struct {
	Env       string
	Addr      string
	PublicURL *url.URL
	LogLevel  string

	// DBDSN, when set, replaces the built-in seed with the contents of the
	// database.
	DBDSN string
	Seed  string

	RedisAddr     string
	MatchCacheTTL time.Duration

	// LoginRate is the number of login attempts allowed per client IP per minute.
	LoginRate int

	// TrustedProxies are the reverse proxies whose X-Forwarded-For header
	// is honoured when resolving the client IP.
	TrustedProxies []netip.Prefix
}

// Load reads APP_ENV_FILE (default .env) into the process environment,
// without overriding variables that are already set, then parses the
// environment.
func Load() (Config, error) {
	path := os.Getenv("APP_ENV_FILE")
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); err != nil {
			return LoadFromEnv(os.Getenv)
		}
	}
	if err := loadDotEnvFile(path, os.Setenv, os.Getenv); err != nil {
		return Config{}, fmt.Errorf("APP_ENV_FILE: %w", err)
	}
	return LoadFromEnv(os.Getenv)
}

func loadDotEnvFile(path string, setenv func(string, string) error, getenv func(string) string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for k, v := range values {
		if v == "" || getenv(k) != "" {
			continue
		}
		if err := setenv(k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Env:       getenv("APP_ENV"),
		Addr:      getenv("APP_ADDR"),
		DBDSN:     getenv("APP_DB_DSN"),
		LogLevel:  getenv("APP_LOG_LEVEL"),
		RedisAddr: strings.TrimSpace(getenv("APP_REDIS_ADDR")),
		Seed:      strings.ToLower(strings.TrimSpace(getenv("APP_SEED"))),
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}

	switch cfg.Env {
	case "dev", "prod", "test":
	default:
		return Config{}, errors.New("APP_ENV: must be one of dev, test, prod")
	}

	publicURLRaw := getenv("APP_PUBLIC_URL")
	if publicURLRaw != "" {
		parsed, err := url.Parse(publicURLRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_PUBLIC_URL: %w", err)
		}
		if !parsed.IsAbs() || parsed.Host == "" {
			return Config{}, errors.New("APP_PUBLIC_URL: must be an absolute URL")
		}
		switch parsed.Scheme {
		case "http", "https":
		default:
			return Config{}, errors.New("APP_PUBLIC_URL: scheme must be http or https")
		}
		cfg.PublicURL = parsed
	}

	switch cfg.Seed {
	case "":
		cfg.Seed = SeedDemo
	case SeedDemo, SeedEmpty:
	default:
		return Config{}, errors.New("APP_SEED: must be demo or empty")
	}

	ttlRaw := getenv("APP_MATCH_CACHE_TTL")
	if ttlRaw == "" {
		cfg.MatchCacheTTL = 5 * time.Minute
	} else {
		ttl, err := time.ParseDuration(ttlRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_MATCH_CACHE_TTL: %w", err)
		}
		if ttl <= 0 {
			return Config{}, errors.New("APP_MATCH_CACHE_TTL: must be > 0")
		}
		cfg.MatchCacheTTL = ttl
	}

	rateRaw := getenv("APP_LOGIN_RATE")
	if rateRaw == "" {
		cfg.LoginRate = 10
	} else {
		n, err := strconv.Atoi(rateRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_LOGIN_RATE: %w", err)
		}
		if n <= 0 {
			return Config{}, errors.New("APP_LOGIN_RATE: must be > 0")
		}
		cfg.LoginRate = n
	}

	proxies, err := parseTrustedProxies(getenv("APP_TRUSTED_PROXIES"))
	if err != nil {
		return Config{}, fmt.Errorf("APP_TRUSTED_PROXIES: %w", err)
	}
	cfg.TrustedProxies = proxies

	if cfg.IsProd() && cfg.PublicURL == nil {
		return Config{}, errors.New("APP_PUBLIC_URL: required in prod")
	}

	return cfg, nil
}

// parseTrustedProxies reads a comma separated list of addresses or CIDR
// prefixes. A bare address trusts that single host.
func parseTrustedProxies(raw string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func (c Config) IsProd() bool { return c.Env == "prod" }

// PublicBaseURL is the externally visible base URL without a trailing slash,
// or "" when none is configured.
func (c Config) PublicBaseURL() string {
	if c.PublicURL == nil {
		return ""
	}
	return strings.TrimRight(c.PublicURL.String(), "/")
}

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"

	defaultPort       = 3318
	defaultSQLitePath = "voicelink.db"
	defaultRatePerMin = 10
	defaultRateBurst  = 5
	defaultEnvFile    = ".env"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Secrets
	AdminSecret        string
	ModeratorTokenSalt string
	TwilioAuthToken    string

	// PublicBaseURL is the externally visible origin (scheme://host) the
	// telephony provider calls; it is part of the signed webhook payload.
	PublicBaseURL string
	PromptsFile   string

	RateLimitPerMinute int
	RateLimitBurst     int

	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP
	// headers are believed. Requests from anyone else are keyed on RemoteAddr.
	TrustedProxies []netip.Prefix
}

// ParseFlags validates flags and fills the remaining settings from the
// environment. A .env file, when present, is loaded first and never
// overrides variables that are already set.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string
	var trustedProxies string

	flags := flag.NewFlagSet("voicelink", flag.ContinueOnError)

	flags.StringVar(&envFile, "env-file", defaultEnvFile, "Optional dotenv file")

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite path")
	flags.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	flags.StringVar(&cfg.PublicBaseURL, "public-url", "", "Public base URL used for webhook signatures")
	flags.StringVar(&cfg.PromptsFile, "prompts", "", "IVR prompts YAML file")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.AdminSecret, "admin-secret", "", "Admin secret (prefer env)")
	flags.StringVar(&cfg.ModeratorTokenSalt, "token-salt", "", "Moderator token salt (prefer env)")
	flags.StringVar(&cfg.TwilioAuthToken, "twilio-token", "", "Twilio auth token (prefer env)")

	flags.IntVar(&cfg.RateLimitPerMinute, "rate", 0, "Rate limit: requests per minute per client")
	flags.IntVar(&cfg.RateLimitBurst, "burst", 0, "Rate limit: burst size")
	flags.StringVar(&trustedProxies, "trusted-proxies", "", "Comma-separated proxy IPs or CIDRs allowed to set X-Forwarded-For")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", defaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLitePath
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if cfg.PromptsFile == "" {
		cfg.PromptsFile = os.Getenv("IVR_PROMPTS_FILE")
	}

	if cfg.RateLimitPerMinute == 0 {
		n, err := envInt("RATE_LIMIT_PER_MINUTE", defaultRatePerMin)
		if err != nil {
			return Config{}, err
		}
		cfg.RateLimitPerMinute = n
	}
	if cfg.RateLimitBurst == 0 {
		n, err := envInt("RATE_LIMIT_BURST", defaultRateBurst)
		if err != nil {
			return Config{}, err
		}
		cfg.RateLimitBurst = n
	}
	if cfg.RateLimitPerMinute < 0 || cfg.RateLimitBurst < 0 {
		return Config{}, errors.New("rate limit settings must not be negative")
	}

	if trustedProxies == "" {
		trustedProxies = os.Getenv("TRUSTED_PROXIES")
	}
	proxies, err := parseProxies(trustedProxies)
	if err != nil {
		return Config{}, err
	}
	cfg.TrustedProxies = proxies

	// Twilio token is optional: without it webhook signatures are not checked
	if cfg.TwilioAuthToken == "" {
		cfg.TwilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	}

	// Secrets - MUST be provided
	if cfg.AdminSecret == "" {
		cfg.AdminSecret = os.Getenv("ADMIN_SECRET")
	}
	if cfg.AdminSecret == "" {
		return Config{}, errors.New("ADMIN_SECRET required")
	}

	if cfg.ModeratorTokenSalt == "" {
		cfg.ModeratorTokenSalt = os.Getenv("MODERATOR_TOKEN_SALT")
	}
	if cfg.ModeratorTokenSalt == "" {
		return Config{}, errors.New("MODERATOR_TOKEN_SALT required")
	}

	return cfg, nil
}

// loadEnvFile loads a dotenv file; a missing file is not an error
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// parseProxies reads a comma-separated list of IPs and CIDRs.
// A bare IP is a single-address prefix.
func parseProxies(s string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		if strings.Contains(field, "/") {
			prefix, err := netip.ParsePrefix(field)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", field, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(field)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", field, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

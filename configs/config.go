package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	DBDriver string
	DBSource string

	JWTSecret   string
	JWTTTL      time.Duration
	TokenCookie string

	SessionCookie string
	SessionTTL    time.Duration

	CORSOrigins []string
	MediaRoot   string
	PublicURL   string

	AdminUsername string
	AdminEmail    string
	AdminPassword string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	CinetPayAPIKey  string
	CinetPaySiteID  string
	CinetPayBaseURL string
	Currency        string

	ChromeBin          string
	TokenCleanInterval time.Duration
	Fixtures           string
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:   getEnv("APP_ENV", "production"),
		Port:     getEnv("PORT", "8000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "cooldeal.db"),

		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		JWTTTL:      time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		TokenCookie: getEnv("TOKEN_COOKIE", "cooldeal_token"),

		SessionCookie: getEnv("SESSION_COOKIE", "cooldeal_sid"),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_DAYS", 14)) * 24 * time.Hour,

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		MediaRoot:   getEnv("MEDIA_ROOT", "uploads"),
		PublicURL:   strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8000"), "/"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@cooldeal.local"),

		CinetPayAPIKey:  getEnv("CINETPAY_API_KEY", ""),
		CinetPaySiteID:  getEnv("CINETPAY_SITE_ID", ""),
		CinetPayBaseURL: getEnv("CINETPAY_BASE_URL", "https://api-checkout.cinetpay.com/v2"),
		Currency:        getEnv("PAYMENT_CURRENCY", "XOF"),

		ChromeBin:          getEnv("CHROME_BIN", ""),
		TokenCleanInterval: getEnvDuration("TOKEN_CLEAN_INTERVAL", time.Hour),
		Fixtures:           getEnv("FIXTURES", ""),
	}
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

// SecureCookies reports whether cookies may carry the Secure flag: only when
// the site is served over https.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(c.PublicURL), "https://")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

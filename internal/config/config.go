package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the full environment surface of the service, loaded once in
// main and read-only afterwards.
type Config struct {
	Host   string
	Port   string
	AppEnv string

	GelfAddr       string
	AllowedOrigins []string

	GeminiAPIKey string

	SheetsServiceAccountEmail string
	SheetsPrivateKey          string
	SheetsSpreadsheetID       string
	SheetsSpreadsheetURL      string
	SheetsWorksheetTitle      string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPSecure bool

	EmailFrom     string
	EmailFromName string
	SupportEmail  string
	AdminEmails   []string

	BrandColor     string
	ClientCTAURL   string
	CompanyAddress string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		Host:   getEnv("HOST", "0.0.0.0"),
		Port:   getEnv("PORT", "3001"),
		AppEnv: getEnv("APP_ENV", "development"),

		GelfAddr: os.Getenv("GELF_ADDR"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS",
			"http://localhost:5173,https://project-catalyst-three.vercel.app")),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		SheetsServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		SheetsPrivateKey:          os.Getenv("GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY"),
		SheetsSpreadsheetID:       os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
		SheetsSpreadsheetURL:      os.Getenv("GOOGLE_SHEETS_SPREADSHEET_URL"),
		SheetsWorksheetTitle:      getEnv("GOOGLE_SHEETS_WORKSHEET_TITLE", "Sheet1"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),

		EmailFrom:     strings.TrimSpace(os.Getenv("EMAIL_FROM")),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Project Catalyst"),
		SupportEmail:  getEnv("SUPPORT_EMAIL", os.Getenv("REPLY_TO")),
		AdminEmails:   splitList(os.Getenv("ADMIN_NOTIFICATION_EMAILS")),

		BrandColor:     getEnv("BRAND_COLOR", "#0f766e"),
		ClientCTAURL:   getEnv("CLIENT_CTA_URL", "https://example.com/book"),
		CompanyAddress: getEnv("COMPANY_ADDRESS", "Your City"),
	}

	// Port 465 implies implicit TLS even without the explicit flag.
	c.SMTPSecure = strings.EqualFold(os.Getenv("SMTP_SECURE"), "true") || c.SMTPPort == 465

	if c.GeminiAPIKey == "" {
		fmt.Fprintln(os.Stderr, "warning: GEMINI_API_KEY not set; /api/analyze and /api/chat are disabled")
	}

	return c, nil
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// SMTPConfigured reports whether the mail transport can be used at all.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

// FromAddress returns the sender in `"Name" <addr>` form. EMAIL_FROM may
// already carry a display name, in which case it is used verbatim.
func (c *Config) FromAddress() string {
	if c.EmailFrom != "" && strings.Contains(c.EmailFrom, "<") && strings.Contains(c.EmailFrom, ">") {
		return c.EmailFrom
	}
	addr := c.EmailFrom
	if addr == "" {
		addr = c.SMTPUser
	}
	if addr == "" {
		addr = "no-reply@example.com"
	}
	return fmt.Sprintf("%q <%s>", c.EmailFromName, addr)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// splitList splits a recipient or origin list on commas and semicolons,
// dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package sheets appends submission rows to a Google Sheets worksheet.
// The sheet is treated as an append-only log: one independent append call
// per submission, rows never updated or deleted.
package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/project-catalyst/catalyst-api/internal/config"
)

// ConfigError indicates missing spreadsheet configuration rather than an
// upstream failure.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "sheets: " + e.Msg
}

type Appender struct {
	email         string
	privateKey    string
	spreadsheetID string
	worksheet     string
}

// NewAppender builds an appender from the service configuration. Missing
// credentials are not an error here; they surface on the first Append so
// the rest of the service can run without a spreadsheet.
func NewAppender(cfg *config.Config) *Appender {
	id := cfg.SheetsSpreadsheetID
	if id == "" {
		id = ExtractSpreadsheetID(cfg.SheetsSpreadsheetURL)
	}
	return &Appender{
		email: cfg.SheetsServiceAccountEmail,
		// Deployment environments often store the PEM with literal \n.
		privateKey:    strings.ReplaceAll(cfg.SheetsPrivateKey, `\n`, "\n"),
		spreadsheetID: id,
		worksheet:     cfg.SheetsWorksheetTitle,
	}
}

// Append adds one row to the worksheet. Failures propagate to the caller;
// row persistence is not best-effort.
func (a *Appender) Append(ctx context.Context, row []any) error {
	if a.email == "" || a.privateKey == "" {
		return &ConfigError{Msg: "missing service account credentials; set GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY"}
	}
	if a.spreadsheetID == "" {
		return &ConfigError{Msg: "GOOGLE_SHEETS_SPREADSHEET_ID is not set"}
	}

	conf := &jwt.Config{
		Email:      a.email,
		PrivateKey: []byte(a.privateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return fmt.Errorf("sheets: new service: %w", err)
	}

	vr := &sheetsapi.ValueRange{Values: [][]any{row}}
	_, err = svc.Spreadsheets.Values.Append(a.spreadsheetID, a.worksheet+"!A:Z", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append: %w", err)
	}
	return nil
}

var spreadsheetIDPattern = regexp.MustCompile(`spreadsheets/(?:d|u/\d/d)/([^/]+)`)

// ExtractSpreadsheetID pulls the spreadsheet id out of a sheet URL the
// operator pasted from the browser. Returns "" when no id is found.
func ExtractSpreadsheetID(url string) string {
	m := spreadsheetIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

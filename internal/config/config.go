package config

import (
	"context"
	"os"
	"strings"

	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"

	"github.com/duozero/intake-service/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Google Workspace backing store
	SpreadsheetID       string
	DriveUploadFolderID string
	googleCredsJSON     []byte
	googleClientEmail   string
	googlePrivateKey    string

	// SendGrid (optional; notifications are skipped without a key)
	SendGridAPIKey    string
	SendGridFromName  string
	SendGridFromEmail string

	LockRule utils.LockRule

	CORSAllowedOrigins []string
}

// Scopes the service account needs: full Sheets access for the datastore,
// drive.file for attachment uploads into the shared folder.
var googleScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive.file",
}

func LoadConfig() *Config {
	appName := os.Getenv("APP_NAME")
	if appName == "" {
		appName = "intake-service"
	}
	utils.Logger.Info("Loading config for app: ", appName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}
	appUrl := os.Getenv("APP_URL")

	spreadsheetID := os.Getenv("SPREADSHEET_ID")
	if spreadsheetID == "" {
		utils.Logger.Fatal("SPREADSHEET_ID env var is missing")
	}

	cfg := &Config{
		AppName:             appName,
		AppPort:             appPort,
		AppUrl:              appUrl,
		SpreadsheetID:       spreadsheetID,
		DriveUploadFolderID: os.Getenv("DRIVE_UPLOAD_FOLDER_ID"),

		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromName:  os.Getenv("SENDGRID_FROM_NAME"),
		SendGridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),

		LockRule: utils.LockStrictlyPast,
	}
	if cfg.SendGridFromName == "" {
		cfg.SendGridFromName = "Duo0"
	}
	if cfg.SendGridAPIKey != "" && cfg.SendGridFromEmail == "" {
		utils.Logger.Warn("SENDGRID_FROM_EMAIL is empty, defaulting to no-reply@duozero.app")
		cfg.SendGridFromEmail = "no-reply@duozero.app"
	}

	if parseBoolEnv("LOCK_ONE_DAY_BEFORE") {
		cfg.LockRule = utils.LockOneDayBefore
		utils.Logger.Info("Schedule lock rule: one day before")
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	// Credentials: either a full service-account JSON blob or the
	// email/private-key pair (the key arrives with literal \n escapes when
	// set through most secret managers).
	if raw := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"); raw != "" {
		cfg.googleCredsJSON = []byte(raw)
	} else {
		cfg.googleClientEmail = os.Getenv("GOOGLE_CLIENT_EMAIL")
		cfg.googlePrivateKey = strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n")
		if cfg.googleClientEmail == "" || cfg.googlePrivateKey == "" {
			utils.Logger.Fatal("Google credentials missing: set GOOGLE_APPLICATION_CREDENTIALS_JSON or GOOGLE_CLIENT_EMAIL + GOOGLE_PRIVATE_KEY")
		}
	}

	return cfg
}

// GoogleClientOptions resolves the configured credentials into client options
// for the Sheets and Drive services.
func (c *Config) GoogleClientOptions(ctx context.Context) []option.ClientOption {
	if len(c.googleCredsJSON) > 0 {
		return []option.ClientOption{
			option.WithCredentialsJSON(c.googleCredsJSON),
			option.WithScopes(googleScopes...),
		}
	}

	jwtCfg := &jwt.Config{
		Email:      c.googleClientEmail,
		PrivateKey: []byte(c.googlePrivateKey),
		Scopes:     googleScopes,
		TokenURL:   "https://oauth2.googleapis.com/token",
	}
	return []option.ClientOption{option.WithTokenSource(jwtCfg.TokenSource(ctx))}
}

func parseBoolEnv(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

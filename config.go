package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives backend selection and server behavior. Defaults suit a
// local demo; production deployments point Backend at "sheets" with a
// credentials file.
type Config struct {
	Port            int    `yaml:"port"`
	Backend         string `yaml:"backend"` // sheets, xlsx, sqlite, memory
	CredentialsPath string `yaml:"credentials_path"`
	WorkbookPath    string `yaml:"workbook_path"`
	DatabasePath    string `yaml:"database_path"`
	UploadsDir      string `yaml:"uploads_dir"`
	SessionSecret   string `yaml:"session_secret"`
	CompanyName     string `yaml:"company_name"`
	CompanyEmail    string `yaml:"company_email"`
}

func defaultConfig() Config {
	return Config{
		Port:            8080,
		Backend:         "xlsx",
		CredentialsPath: "credentials.json",
		WorkbookPath:    "aims.xlsx",
		DatabasePath:    "aims.db",
		UploadsDir:      "uploads",
		SessionSecret:   "change-me-in-production",
		CompanyName:     "Your Company",
		CompanyEmail:    "admin@example.com",
	}
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// is not an error; env vars AIMS_COMPANY_NAME and AIMS_COMPANY_EMAIL
// override branding last.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	raw, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if v := os.Getenv("AIMS_COMPANY_NAME"); v != "" {
		cfg.CompanyName = v
	}
	if v := os.Getenv("AIMS_COMPANY_EMAIL"); v != "" {
		cfg.CompanyEmail = v
	}
	return cfg, nil
}

package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyBaseURL       = "openproject.base_url"
	KeyAPIKey        = "openproject.api_key"
	KeyUser          = "export.user"
	KeyPageSize      = "export.page_size"
	KeyLocationField = "export.location_field"
)

// Environment variables understood for compatibility with other OpenProject
// tooling; they map onto the viper keys above.
const (
	EnvBaseURL       = "OPENPROJECT_BASE_URL"
	EnvAPIKey        = "OPENPROJECT_API_KEY"
	EnvUser          = "OPENPROJECT_USER"
	EnvLocationField = "OPENPROJECT_LOCATION_CF"
)

type Config struct {
	OpenProject OpenProjectConfig `mapstructure:"openproject" validate:"required"`
	Export      ExportConfig      `mapstructure:"export"`
}

type OpenProjectConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key" validate:"required"`
}

type ExportConfig struct {
	// User is an OpenProject user id, or "me" for the key owner.
	User     string `mapstructure:"user" validate:"required"`
	PageSize int    `mapstructure:"page_size" validate:"gt=0,lte=1000"`
	// LocationField is the custom-field key carrying the work location,
	// e.g. customField7. Empty means every row gets the default location.
	LocationField string `mapstructure:"location_field"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// BindEnv maps the OPENPROJECT_* environment variables onto config keys.
func BindEnv() {
	_ = viper.BindEnv(KeyBaseURL, EnvBaseURL)
	_ = viper.BindEnv(KeyAPIKey, EnvAPIKey)
	_ = viper.BindEnv(KeyUser, EnvUser)
	_ = viper.BindEnv(KeyLocationField, EnvLocationField)
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# optimesheet configuration
openproject:
  base_url: "https://openproject.example.com"
  api_key: ""

export:
  # user id or "me" for the owner of the API key
  user: "me"
  page_size: 200
  # list-type or scalar custom field carrying the work location, e.g. customField7
  location_field: ""
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateLocationField(cfg.Export.LocationField); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyUser, "me")
	v.SetDefault(KeyPageSize, 200)
	v.SetDefault(KeyLocationField, "")
}

func validateLocationField(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed != value {
		return fmt.Errorf("validation failed: export.location_field %q has surrounding whitespace", value)
	}
	if strings.ContainsAny(trimmed, " \t") {
		return fmt.Errorf("validation failed: export.location_field %q must be a single field key", value)
	}
	return nil
}

package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_AcceptsMinimalConfig(t *testing.T) {
	t.Parallel()

	content := []byte(`openproject:
  base_url: "https://openproject.example.com"
  api_key: "secret"
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Export.User != "me" {
		t.Fatalf("expected default user 'me', got %q", cfg.Export.User)
	}
	if cfg.Export.PageSize != 200 {
		t.Fatalf("expected default page size 200, got %d", cfg.Export.PageSize)
	}
	if cfg.Export.LocationField != "" {
		t.Fatalf("expected empty default location field, got %q", cfg.Export.LocationField)
	}
}

func TestValidateYAMLContent_RejectsMissingAPIKey(t *testing.T) {
	t.Parallel()

	content := []byte(`openproject:
  base_url: "https://openproject.example.com"
`)

	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatalf("expected validation error for missing api key")
	}
}

func TestValidateYAMLContent_RejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	content := []byte(`openproject:
  base_url: "not a url"
  api_key: "secret"
`)

	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatalf("expected validation error for invalid base URL")
	}
}

func TestValidateYAMLContent_RejectsOutOfRangePageSize(t *testing.T) {
	t.Parallel()

	content := []byte(`openproject:
  base_url: "https://openproject.example.com"
  api_key: "secret"
export:
  page_size: 0
`)

	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatalf("expected validation error for page_size 0")
	}
}

func TestValidateYAMLContent_RejectsLocationFieldWithSpaces(t *testing.T) {
	t.Parallel()

	content := []byte(`openproject:
  base_url: "https://openproject.example.com"
  api_key: "secret"
export:
  location_field: "custom field 7"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for location field with spaces")
	}
	if !strings.Contains(err.Error(), "location_field") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_AcceptsCustomFieldKey(t *testing.T) {
	t.Parallel()

	content := []byte(`openproject:
  base_url: "https://openproject.example.com"
  api_key: "secret"
export:
  user: "42"
  page_size: 50
  location_field: "customField7"
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Export.User != "42" || cfg.Export.PageSize != 50 || cfg.Export.LocationField != "customField7" {
		t.Fatalf("unexpected config: %+v", cfg.Export)
	}
}

func TestExampleYAML_Validates(t *testing.T) {
	t.Parallel()

	// The template ships with an empty api_key on purpose; filling it in
	// must be the only step needed for a valid config.
	content := strings.Replace(ExampleYAML(), `api_key: ""`, `api_key: "secret"`, 1)
	if _, err := ValidateYAMLContent([]byte(content)); err != nil {
		t.Fatalf("example config must validate once the key is set: %v", err)
	}
}

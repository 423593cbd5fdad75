package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top-level section of the config must be described by the schema
	if root := rootSchema(&schema); root != nil {
		for key := range configMap {
			if _, ok := root.Properties.Get(key); !ok {
				return fmt.Errorf("section %q is not described by schema", key)
			}
		}
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// rootSchema returns the schema describing Config, either the root itself or its $defs entry
func rootSchema(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Properties != nil && s.Properties.Len() > 0 {
		return s
	}
	if def, ok := s.Definitions["Config"]; ok && def.Properties != nil {
		return def
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for sqlite")
	}
	if len(cfg.Aggregation.Subreddits) == 0 {
		return fmt.Errorf("aggregation.subreddits is required")
	}
	if cfg.Aggregation.TopKeywords < 0 {
		return fmt.Errorf("aggregation.top_keywords must be non-negative")
	}
	if cfg.Aggregation.MinKeywordLength < 0 {
		return fmt.Errorf("aggregation.min_keyword_length must be non-negative")
	}
	if cfg.Schedule.Enabled && cfg.Schedule.PollInterval == 0 {
		return fmt.Errorf("schedule.poll_interval is required when schedule is enabled")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names and
// a string-friendly duration type, so that config files can spell timeouts
// as "15s" rather than nanosecond integers.
type StructuredJSONConfig struct {
	GitHub struct {
		APIBaseURL     string   `json:"api_base_url"`
		APIToken       string   `json:"api_token"`
		RequestTimeout Duration `json:"request_timeout"`
		PageSize       int      `json:"page_size"`
	} `json:"github,omitempty"`

	DB struct {
		URI      string `json:"uri"`
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Name     string `json:"name"`
		User     string `json:"user"`
		Password string `json:"password"`
	} `json:"db,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		GitHub: GitHub{
			APIBaseURL:     jsonCfg.GitHub.APIBaseURL,
			APIToken:       jsonCfg.GitHub.APIToken,
			RequestTimeout: time.Duration(jsonCfg.GitHub.RequestTimeout),
			PageSize:       jsonCfg.GitHub.PageSize,
		},
		DB: DB{
			URI:      jsonCfg.DB.URI,
			Host:     jsonCfg.DB.Host,
			Port:     jsonCfg.DB.Port,
			Name:     jsonCfg.DB.Name,
			User:     jsonCfg.DB.User,
			Password: jsonCfg.DB.Password,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

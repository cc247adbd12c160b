package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors the config file layout. The accounts list can
// only come from this source.
type StructuredJSONConfig struct {
	Base struct {
		Debug           bool     `json:"debug"`
		AccountInterval Duration `json:"account_interval"`
	} `json:"base,omitempty"`

	API struct {
		BaseURL        string   `json:"base_url"`
		WapURL         string   `json:"wap_url"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryLimit     int      `json:"retry_limit"`
	} `json:"api,omitempty"`

	Storage struct {
		CacheDir string `json:"cache_dir"`
		DSN      string `json:"dsn"`
	} `json:"storage,omitempty"`

	Accounts []JSONAccount `json:"accounts,omitempty"`
}

// JSONAccount is the file representation of one account.
type JSONAccount struct {
	Name            string  `json:"name"`
	StudentID       string  `json:"student_id"`
	Suffix          string  `json:"suffix"`
	Password        string  `json:"password"`
	Phone           string  `json:"phone"`
	DistanceKm      float64 `json:"distance"`
	PaceMinPerKm    float64 `json:"pace"`
	StrideFrequency int     `json:"stride_frequency"`
	RecordType      string  `json:"record_type"`
	RecordNumber    int     `json:"record_number"`
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

	accounts := make([]Account, 0, len(jsonCfg.Accounts))
	for _, a := range jsonCfg.Accounts {
		accounts = append(accounts, Account{
			Name:            a.Name,
			StudentID:       a.StudentID,
			Suffix:          a.Suffix,
			Password:        a.Password,
			Phone:           a.Phone,
			DistanceKm:      a.DistanceKm,
			PaceMinPerKm:    a.PaceMinPerKm,
			StrideFrequency: a.StrideFrequency,
			RecordType:      a.RecordType,
			RecordNumber:    a.RecordNumber,
		})
	}

	cfg := &StructuredConfig{
		Base: Base{
			Debug:           jsonCfg.Base.Debug,
			AccountInterval: time.Duration(jsonCfg.Base.AccountInterval),
		},
		API: API{
			BaseURL:        jsonCfg.API.BaseURL,
			WapURL:         jsonCfg.API.WapURL,
			RequestTimeout: time.Duration(jsonCfg.API.RequestTimeout),
			RetryLimit:     jsonCfg.API.RetryLimit,
		},
		Storage: Storage{
			CacheDir: jsonCfg.Storage.CacheDir,
			DSN:      jsonCfg.Storage.DSN,
		},
		Accounts:     accounts,
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
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

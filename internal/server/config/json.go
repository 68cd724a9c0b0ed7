package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/flagx"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. Duration fields are plain integers (seconds or
// minutes, as named) and are converted to time.Duration when copied into
// the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP     string `json:"endpoint_addr_http"`
	DatabaseDSN          string `json:"database_dsn"`
	ClassifierEndpoint   string `json:"classifier_endpoint"`
	ClassifierToken      string `json:"classifier_token"`
	ClassifierTimeoutSec int    `json:"classifier_timeout_sec"`
	StrictDates          bool   `json:"strict_dates"`
	S3RootUser           string `json:"s3_root_user"`
	S3RootPassword       string `json:"s3_root_password"`
	S3Bucket             string `json:"s3_bucket"`
	S3Region             string `json:"s3_region"`
	S3BaseEndpoint       string `json:"s3_base_endpoint"`
	ReportURLTTLMin      int    `json:"report_url_ttl_min"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set no file is loaded. An unreadable or invalid file panics,
// since running with half-applied configuration is worse than not starting.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.ClassifierEndpoint = c.ClassifierEndpoint
	config.ClassifierToken = c.ClassifierToken
	config.ClassifierTimeout = time.Duration(c.ClassifierTimeoutSec) * time.Second
	config.StrictDates = c.StrictDates
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.ReportURLTTL = time.Duration(c.ReportURLTTLMin) * time.Minute
}

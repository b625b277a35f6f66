package config

import (
	"encoding/json"
	"os"

	"github.com/Efrem-Yohanis/playwright-playground/internal/flagx"
)

// JsonConfig is the DTO for the optional JSON configuration file. Absent
// fields keep their current (default) values.
type JsonConfig struct {
	Backend     *string `json:"backend"`
	KeyPrefix   *string `json:"key_prefix"`
	DataDir     *string `json:"data_dir"`
	SQLitePath  *string `json:"sqlite_path"`
	DatabaseDSN *string `json:"database_dsn"`
	RedisAddr   *string `json:"redis_addr"`

	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config flags; without them no
// file is loaded. An unreadable or invalid file panics, matching the
// fail-fast startup policy.
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

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	if c.Backend != nil {
		config.Backend = Backend(*c.Backend)
	}
	setString(&config.KeyPrefix, c.KeyPrefix)
	setString(&config.DataDir, c.DataDir)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
}

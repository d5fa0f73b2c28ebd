/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

// Package config loads the process configuration from a YAML file with
// environment-variable overrides, in the manner the rest of this corpus
// uses viper.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete configuration for the API server process.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" json:"server"`
	Cors       CorsConfig       `mapstructure:"cors" json:"cors"`
	Postgres   PostgresConfig   `mapstructure:"postgres" json:"postgres"`
	Pagination PaginationConfig `mapstructure:"pagination" json:"pagination"`
	Errors     ErrorsConfig     `mapstructure:"errors" json:"errors"`
	Swagger    SwaggerConfig    `mapstructure:"swagger" json:"swagger"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host        string `mapstructure:"host" json:"host"`
	Port        int    `mapstructure:"port" json:"port"`
	ContextPath string `mapstructure:"contextPath" json:"contextPath"`
}

// CorsConfig mirrors go-chi/cors' Options.
type CorsConfig struct {
	AllowedOrigins   []string `mapstructure:"allowedOrigins" json:"allowedOrigins"`
	AllowedMethods   []string `mapstructure:"allowedMethods" json:"allowedMethods"`
	AllowedHeaders   []string `mapstructure:"allowedHeaders" json:"allowedHeaders"`
	AllowCredentials bool     `mapstructure:"allowCredentials" json:"allowCredentials"`
}

// PostgresConfig configures the optional Postgres-backed database connector.
// When Host is empty the server falls back to the in-memory store.
type PostgresConfig struct {
	Host                   string `mapstructure:"host" json:"host"`
	Port                   int    `mapstructure:"port" json:"port"`
	User                   string `mapstructure:"user" json:"user"`
	Password               string `mapstructure:"password" json:"password"`
	DBName                 string `mapstructure:"dbname" json:"dbname"`
	MaxOpenConnections     int    `mapstructure:"maxOpenConnections" json:"maxOpenConnections"`
	MaxIdleConnections     int    `mapstructure:"maxIdleConnections" json:"maxIdleConnections"`
	ConnMaxLifetimeMinutes int    `mapstructure:"connMaxLifetimeMinutes" json:"connMaxLifetimeMinutes"`
}

// PaginationConfig exposes the default/max page size knobs used by every
// format-specific parser (§4.3).
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"defaultPageSize" json:"defaultPageSize"`
	MaxPageSize     int `mapstructure:"maxPageSize" json:"maxPageSize"`
}

// ErrorsConfig controls how much detail error envelopes expose (§7).
type ErrorsConfig struct {
	ExposeDetailedErrors bool `mapstructure:"exposeDetailedErrors" json:"exposeDetailedErrors"`
}

// SwaggerConfig carries contact metadata injected into the served OpenAPI
// document.
type SwaggerConfig struct {
	ContactName  string `mapstructure:"contactName" json:"contactName"`
	ContactEmail string `mapstructure:"contactEmail" json:"contactEmail"`
	ContactURL   string `mapstructure:"contactURL" json:"contactURL"`
}

// Load reads configuration from configPath (if non-empty), overlays
// environment variables (SERVER_PORT, POSTGRES_HOST, ...), and fills in
// defaults for anything left unset.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		log.Printf("loading config from file: %s", configPath)
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Println("no config file provided, using environment variables and defaults")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	Print(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.contextPath", "")

	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"*"})
	v.SetDefault("cors.allowCredentials", true)

	v.SetDefault("postgres.host", "")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "apicore")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "apicore")
	v.SetDefault("postgres.maxOpenConnections", 50)
	v.SetDefault("postgres.maxIdleConnections", 50)
	v.SetDefault("postgres.connMaxLifetimeMinutes", 5)

	v.SetDefault("pagination.defaultPageSize", 20)
	v.SetDefault("pagination.maxPageSize", 1000)

	v.SetDefault("errors.exposeDetailedErrors", false)

	v.SetDefault("swagger.contactName", "")
	v.SetDefault("swagger.contactEmail", "")
	v.SetDefault("swagger.contactURL", "")
}

// Print logs the loaded configuration with credentials redacted.
func Print(cfg *Config) {
	redacted := *cfg
	if redacted.Postgres.Host != "" {
		redacted.Postgres.Host = "****"
		redacted.Postgres.User = "****"
		redacted.Postgres.Password = "****"
	}
	b, err := json.MarshalIndent(redacted, "", "  ")
	if err != nil {
		log.Printf("unable to marshal configuration: %v", err)
		return
	}
	log.Printf("loaded configuration:\n%s", string(b))
}

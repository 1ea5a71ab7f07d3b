package api

import (
	"errors"
	"fmt"
)

// APIConfig represents the configuration for the entire api application
type APIConfig struct {
	Integrations *APIConfigIntegrations `yaml:"integrations,omitempty"`
	APIServer    *APIServerConfig       `yaml:"apiServer,omitempty"`
	Auth         *AuthConfig            `yaml:"auth,omitempty"`
	Database     *DatabaseConfig        `yaml:"database,omitempty"`
	Cache        *CacheConfig           `yaml:"cache,omitempty"`
}

func (c *APIConfig) SetDefaults() {
	if c.Integrations == nil {
		c.Integrations = &APIConfigIntegrations{}
	}
	c.Integrations.SetDefaults()

	if c.APIServer == nil {
		c.APIServer = &APIServerConfig{}
	}
	c.APIServer.SetDefaults()

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	c.Auth.SetDefaults()

	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	c.Database.SetDefaults()

	if c.Cache == nil {
		c.Cache = &CacheConfig{}
	}
	c.Cache.SetDefaults()
}

func (c *APIConfig) Validate() (err error) {
	err = c.Integrations.Validate()
	if err != nil {
		return
	}
	err = c.APIServer.Validate()
	if err != nil {
		return
	}
	err = c.Auth.Validate()
	if err != nil {
		return
	}
	err = c.Database.Validate()
	if err != nil {
		return
	}
	err = c.Cache.Validate()
	if err != nil {
		return
	}

	return nil
}

// APIConfigIntegrations contains config for upstream source control integrations
type APIConfigIntegrations struct {
	Github *GithubConfig `yaml:"github,omitempty"`
}

func (c *APIConfigIntegrations) SetDefaults() {
	if c.Github == nil {
		c.Github = &GithubConfig{}
	}
	c.Github.SetDefaults()
}

func (c *APIConfigIntegrations) Validate() (err error) {
	return c.Github.Validate()
}

// GithubConfig configures the Github REST api client
type GithubConfig struct {
	APIBaseURL string `yaml:"apiBaseURL"`
}

func (c *GithubConfig) SetDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://api.github.com"
	}
}

func (c *GithubConfig) Validate() (err error) {
	return nil
}

// APIServerConfig represents the config used by the api to run its api server
type APIServerConfig struct {
	BaseURL string `yaml:"baseURL"`
}

func (c *APIServerConfig) SetDefaults() {
}

func (c *APIServerConfig) Validate() (err error) {
	if c.BaseURL == "" {
		return errors.New("Configuration item 'apiServer.baseURL' is required; please set it to the full url towards the base of the api, with scheme and host")
	}

	return nil
}

// AuthConfig determines how users are authenticated towards the api
type AuthConfig struct {
	JWT *JWTConfig `yaml:"jwt,omitempty"`
}

func (c *AuthConfig) SetDefaults() {
	if c.JWT == nil {
		c.JWT = &JWTConfig{}
	}
	c.JWT.SetDefaults()
}

func (c *AuthConfig) Validate() (err error) {
	return c.JWT.Validate()
}

type JWTConfig struct {
	Domain string `yaml:"domain"`
	// Key to sign JWT; use 256-bit key (or 32 bytes) minimum length
	Key string `yaml:"key"`
}

func (c *JWTConfig) SetDefaults() {
}

func (c *JWTConfig) Validate() (err error) {
	if c.Domain == "" {
		return errors.New("Configuration item 'auth.jwt.domain' is required; please set it to the same host as used in 'apiServer.baseURL'")
	}
	if len(c.Key) < 32 {
		return errors.New("Configuration item 'auth.jwt.key' is required; please set it to a 256-bit key")
	}

	return nil
}

// DatabaseConfig contains config for the dashboard database
type DatabaseConfig struct {
	DatabaseName             string `yaml:"databaseName"`
	Host                     string `yaml:"host"`
	Insecure                 bool   `yaml:"insecure"`
	SslMode                  string `yaml:"sslMode"`
	CertificateAuthorityPath string `yaml:"certificateAuthorityPath"`
	CertificatePath          string `yaml:"certificatePath"`
	CertificateKeyPath       string `yaml:"certificateKeyPath"`
	Port                     int    `yaml:"port"`
	User                     string `yaml:"user"`
	Password                 string `yaml:"password"`
	MaxOpenConns             int    `yaml:"maxOpenConnections"`
	MaxIdleConns             int    `yaml:"maxIdleConnections"`
	ConnMaxLifetimeMinutes   int    `yaml:"connectionMaxLifetimeMinutes"`
}

func (c *DatabaseConfig) SetDefaults() {
	if c.DatabaseName == "" {
		c.DatabaseName = "defaultdb"
	}
	if c.Host == "" {
		c.Host = "pipesight-db-public"
	}
	if c.SslMode == "" {
		c.SslMode = "verify-full"
	}
	if c.CertificateAuthorityPath == "" {
		c.CertificateAuthorityPath = "/cockroach-certs/ca.crt"
	}
	if c.CertificatePath == "" {
		c.CertificatePath = "/cockroach-certs/tls.crt"
	}
	if c.CertificateKeyPath == "" {
		c.CertificateKeyPath = "/cockroach-certs/tls.key"
	}
	if c.Port <= 0 {
		c.Port = 26257
	}
	if c.User == "" {
		c.User = "pipesight"
	}
}

func (c *DatabaseConfig) Validate() (err error) {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("Configuration item 'database.port' is invalid; value %v is not a valid port number", c.Port)
	}

	return nil
}

// CacheConfig sets the time-to-live for the in-process read-through cache
type CacheConfig struct {
	StatsTTLSeconds   int `yaml:"statsTTLSeconds"`
	DetailsTTLSeconds int `yaml:"detailsTTLSeconds"`
}

func (c *CacheConfig) SetDefaults() {
	if c.StatsTTLSeconds <= 0 {
		c.StatsTTLSeconds = 300
	}
	if c.DetailsTTLSeconds <= 0 {
		c.DetailsTTLSeconds = 600
	}
}

func (c *CacheConfig) Validate() (err error) {
	return nil
}

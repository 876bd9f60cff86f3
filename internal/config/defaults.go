package config

import "time"

// ApplyDefaults fills in platform defaults for every unset field of cfg.
// It never overrides a value that was explicitly provided by file or
// environment.
func ApplyDefaults(cfg *Config) {
	// Server
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "smartimport"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "smartimport"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = "file://migrations"
	}

	// Redis
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = 15 * time.Minute
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "smartimport:"
	}

	// Kafka
	if cfg.Kafka.TopicPrefix == "" {
		cfg.Kafka.TopicPrefix = "smartimport"
	}
	if cfg.Kafka.ProducerRetries == 0 {
		cfg.Kafka.ProducerRetries = 3
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = 100 * time.Millisecond
	}

	// Exchange authority
	if cfg.ExchangeAuthority.BaseURL == "" {
		cfg.ExchangeAuthority.BaseURL = "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata"
	}
	if cfg.ExchangeAuthority.LocalCurrency == "" {
		cfg.ExchangeAuthority.LocalCurrency = "BRL"
	}
	if cfg.ExchangeAuthority.MaxAttempts == 0 {
		cfg.ExchangeAuthority.MaxAttempts = 7
	}
	if cfg.ExchangeAuthority.RequestTimeout == 0 {
		cfg.ExchangeAuthority.RequestTimeout = 15 * time.Second
	}
	if cfg.ExchangeAuthority.QuoteCacheTTL == 0 {
		cfg.ExchangeAuthority.QuoteCacheTTL = 12 * time.Hour
	}

	// Tax authority
	if cfg.TaxAuthority.RequestTimeout == 0 {
		cfg.TaxAuthority.RequestTimeout = 15 * time.Second
	}

	// Completion service
	if cfg.Completion.Model == "" {
		cfg.Completion.Model = "gpt-4o-mini"
	}
	if cfg.Completion.MaxTokens == 0 {
		cfg.Completion.MaxTokens = 256
	}
	if cfg.Completion.RequestTimeout == 0 {
		cfg.Completion.RequestTimeout = 20 * time.Second
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// NewDefaultConfig returns a Config populated entirely with platform defaults.
// Intended for tests and for local runs without a config file.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	// Validation requires these even though defaults leave them blank.
	if cfg.TaxAuthority.BaseURL == "" {
		cfg.TaxAuthority.BaseURL = "https://portalunico.siscomex.gov.br/classif/api"
	}
	if cfg.Completion.BaseURL == "" {
		cfg.Completion.BaseURL = "https://api.openai.com/v1"
	}
	return cfg
}

//Personal.AI order the ending

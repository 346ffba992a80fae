package config

import "time"

type ServiceConfig struct {
	Name        string         `yaml:"name"`
	Environment string         `yaml:"environment"`
	Version     string         `yaml:"version"`
	PortalURL   string         `yaml:"portal_url"`
	Paystack    PaystackConfig `yaml:"paystack"`
}

// PaystackConfig holds the gateway credentials. CallbackURL is where the
// hosted checkout redirects the browser after payment.
type PaystackConfig struct {
	SecretKey   string        `yaml:"secret_key"`
	BaseURL     string        `yaml:"base_url"`
	CallbackURL string        `yaml:"callback_url"`
	Timeout     time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	FilePath    string `yaml:"file_path"`
	Development bool   `yaml:"development"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

// RedisConfig selects the pub/sub backend. An empty address falls back
// to in-process delivery.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ReconcilerConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Interval  time.Duration `yaml:"interval"`
	StaleAge  time.Duration `yaml:"stale_age"`
	BatchSize int           `yaml:"batch_size"`
}

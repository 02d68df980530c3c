package config

import "time"

// FileName is the config file looked up in the workspace root.
const FileName = "ocrdws.yaml"

// Config represents ocrdws.yaml.
type Config struct {
	// Pretty runs serialized manifests through xmllint.
	Pretty  bool    `yaml:"pretty,omitempty"`
	Jobs    int     `yaml:"jobs,omitempty"`
	Xmllint Xmllint `yaml:"xmllint,omitempty"`
	HTTP    HTTP    `yaml:"http,omitempty"`
	S3      S3      `yaml:"s3,omitempty"`
}

// Xmllint configures the external formatter.
type Xmllint struct {
	Path string `yaml:"path,omitempty"`
}

// HTTP configures downloads over http(s).
type HTTP struct {
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	RetryMax *int          `yaml:"retry_max,omitempty"`
}

// S3 configures downloads of s3:// URLs.
type S3 struct {
	Region       string `yaml:"region,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	UsePathStyle bool   `yaml:"use_path_style,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Jobs: 1,
		HTTP: HTTP{Timeout: 60 * time.Second},
	}
}

// EffectiveRetryMax returns retry_max, defaulting to 3.
func (h HTTP) EffectiveRetryMax() int {
	if h.RetryMax != nil {
		return *h.RetryMax
	}
	return 3
}

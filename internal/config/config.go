package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Registry RegistryConfig `json:"registry"`
	Server   ServerConfig   `json:"server"`
	Console  ConsoleConfig  `json:"console"`
	PDF      PDFConfig      `json:"pdf"`
	Security SecurityConfig `json:"security"`
	Logging  LoggingConfig  `json:"logging"`
}

// RegistryConfig locates the upstream device-registry REST API. The
// timeout is plain seconds so a config file can say 15 instead of a
// nanosecond count.
type RegistryConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (r RegistryConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
	// PublicBaseURL is the externally reachable console URL, embedded
	// in generated QR codes. Defaults to http://host:port.
	PublicBaseURL string `json:"public_base_url"`
}

type ConsoleConfig struct {
	CatalogTitle  string `json:"catalog_title"`
	MaxUploadSize int64  `json:"max_upload_size"`
}

type PDFConfig struct {
	PaperSize string `json:"paper_size"`
}

type SecurityConfig struct {
	TabIdleTimeout  int `json:"tab_idle_timeout"`
	CleanupInterval int `json:"cleanup_interval"`
}

type LoggingConfig struct {
	Level        string `json:"level"`
	File         string `json:"file"`
	EnableCaller bool   `json:"enable_caller"`
}

func LoadConfig(path string) (*Config, error) {
	// Start with default config
	config := getDefaultConfig()

	// Override with environment variables if they exist
	loadFromEnvironment(config)

	// Try to load from file if it exists
	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, err
		}
		// Override again with environment variables to give them priority
		loadFromEnvironment(config)
	}

	return config, nil
}

func (c *Config) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}

func getDefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			BaseURL:        "http://localhost:5000/api",
			TimeoutSeconds: 15,
		},
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Console: ConsoleConfig{
			CatalogTitle:  "Catálogo de Dispositivos",
			MaxUploadSize: 32 << 20,
		},
		PDF: PDFConfig{
			PaperSize: "A4",
		},
		Security: SecurityConfig{
			TabIdleTimeout:  7200,
			CleanupInterval: 900,
		},
		Logging: LoggingConfig{
			Level:        "info",
			File:         "stdout",
			EnableCaller: false,
		},
	}
}

// loadFromEnvironment loads configuration from environment variables
func loadFromEnvironment(config *Config) {
	if base := os.Getenv("CONSOLE_REGISTRY_URL"); base != "" {
		config.Registry.BaseURL = base
	}
	if timeout := os.Getenv("CONSOLE_REGISTRY_TIMEOUT"); timeout != "" {
		// Either plain seconds ("15") or a duration string ("15s").
		if n, err := strconv.Atoi(timeout); err == nil {
			config.Registry.TimeoutSeconds = n
		} else if d, err := time.ParseDuration(timeout); err == nil {
			config.Registry.TimeoutSeconds = int(d.Seconds())
		}
	}
	if host := os.Getenv("CONSOLE_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("CONSOLE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if base := os.Getenv("CONSOLE_PUBLIC_URL"); base != "" {
		config.Server.PublicBaseURL = base
	}
	if title := os.Getenv("CONSOLE_CATALOG_TITLE"); title != "" {
		config.Console.CatalogTitle = title
	}
	if size := os.Getenv("CONSOLE_MAX_UPLOAD_SIZE"); size != "" {
		if n, err := strconv.ParseInt(size, 10, 64); err == nil {
			config.Console.MaxUploadSize = n
		}
	}
	if level := os.Getenv("CONSOLE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if file := os.Getenv("CONSOLE_LOG_FILE"); file != "" {
		config.Logging.File = file
	}
	if idle := os.Getenv("CONSOLE_TAB_IDLE_TIMEOUT"); idle != "" {
		if n, err := strconv.Atoi(idle); err == nil {
			config.Security.TabIdleTimeout = n
		}
	}
}

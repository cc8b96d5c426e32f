package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Firestore FirestoreConfig `yaml:"firestore"`
	Auth      AuthConfig      `yaml:"auth"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Business  BusinessConfig  `yaml:"business"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains listener settings for both APIs
type ServerConfig struct {
	Host     string `yaml:"host"`
	HTTPPort int    `yaml:"http_port"`
	GRPCPort int    `yaml:"grpc_port"`
}

const (
	BackendFile      = "file"
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
)

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Backend  string `yaml:"backend"`   // "file", "postgres" or "firestore"
	FilePath string `yaml:"file_path"` // For the file backend
	ImageDir string `yaml:"image_dir"` // Inventory photos
	// PublicURL prefixes image links handed back to clients
	PublicURL      string `yaml:"public_url"`
	MaxImageSizeMB int64  `yaml:"max_image_size_mb"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// FirestoreConfig contains Firebase project settings
type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	UserID          string `yaml:"user_id"` // Owner of the users/{uid} document tree
}

const (
	AuthModeBypass = "bypass"
	AuthModeJWT    = "jwt"
)

// AuthConfig contains operator authentication settings
type AuthConfig struct {
	Mode              string     `yaml:"mode"` // "bypass" or "jwt"
	Secret            string     `yaml:"secret"`
	AccessTokenExpiry int        `yaml:"access_token_expiry_minutes"`
	DemoOperatorID    string     `yaml:"demo_operator_id"`
	Operators         []Operator `yaml:"operators"`
}

// Operator is a shop account allowed to log in
type Operator struct {
	ID           string `yaml:"id"`
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
}

// SendGridConfig contains invoice e-mail settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// BusinessConfig is printed on invoices and share messages
type BusinessConfig struct {
	Name           string   `yaml:"name"`
	Address        string   `yaml:"address"`
	Phones         []string `yaml:"phones"`
	CurrencySymbol string   `yaml:"currency_symbol"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	RebuildProjections   string `yaml:"rebuild_projections"`
	RefreshRunningTotals string `yaml:"refresh_running_totals"`
}

// Load reads configuration from a YAML file. A .env file next to the
// working directory is applied to the environment first when present.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.HTTPPort)
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.GRPCPort)
	}

	// Storage
	if val := os.Getenv("STORAGE_BACKEND"); val != "" {
		c.Storage.Backend = val
	}
	if val := os.Getenv("STORAGE_FILE_PATH"); val != "" {
		c.Storage.FilePath = val
	}
	if val := os.Getenv("STORAGE_IMAGE_DIR"); val != "" {
		c.Storage.ImageDir = val
	}
	if val := os.Getenv("PUBLIC_URL"); val != "" {
		c.Storage.PublicURL = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Firestore
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firestore.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Firestore.CredentialsFile = val
	}
	if val := os.Getenv("FIRESTORE_USER_ID"); val != "" {
		c.Firestore.UserID = val
	}

	// Auth
	if val := os.Getenv("AUTH_MODE"); val != "" {
		c.Auth.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.Secret = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server defaults
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9090
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRPCPort)
	}

	// Storage validation
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	switch c.Storage.Backend {
	case "", BackendFile:
		c.Storage.Backend = BackendFile
		if c.Storage.FilePath == "" {
			c.Storage.FilePath = "./data/db.json"
		}
	case BackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("firestore project id is required")
		}
		if c.Firestore.UserID == "" {
			return fmt.Errorf("firestore user id is required")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
	if c.Storage.ImageDir == "" {
		c.Storage.ImageDir = "./data/images"
	}
	if c.Storage.PublicURL == "" {
		c.Storage.PublicURL = fmt.Sprintf("http://localhost:%d", c.Server.HTTPPort)
	}
	if c.Storage.MaxImageSizeMB == 0 {
		c.Storage.MaxImageSizeMB = 5
	}

	// Auth validation
	if c.Auth.DemoOperatorID == "" {
		c.Auth.DemoOperatorID = "demo-owner-123"
	}
	if c.Auth.AccessTokenExpiry == 0 {
		c.Auth.AccessTokenExpiry = 12 * 60
	}
	switch c.Auth.Mode {
	case "", AuthModeBypass:
		c.Auth.Mode = AuthModeBypass
	case AuthModeJWT:
		if c.Auth.Secret == "" {
			return fmt.Errorf("JWT secret is required")
		}
		if len(c.Auth.Secret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters")
		}
		if len(c.Auth.Operators) == 0 {
			return fmt.Errorf("at least one operator is required in jwt mode")
		}
	default:
		return fmt.Errorf("unknown auth mode: %q", c.Auth.Mode)
	}

	// Business defaults
	if c.Business.Name == "" {
		c.Business.Name = "Tent House"
	}
	if c.Business.CurrencySymbol == "" {
		c.Business.CurrencySymbol = "₹"
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Scheduler defaults
	if c.Scheduler.RebuildProjections == "" {
		c.Scheduler.RebuildProjections = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.RefreshRunningTotals == "" {
		c.Scheduler.RefreshRunningTotals = "0 5 0 * * *" // Just after midnight UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetHTTPAddress returns the REST listener address
func (c *Config) GetHTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// GetGRPCAddress returns the gRPC listener address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

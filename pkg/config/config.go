package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for licet
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Server ServerConfig `mapstructure:"server"`
}

// ScanConfig holds scan behavior configuration
type ScanConfig struct {
	MaxDepth        int    `mapstructure:"max_depth"`
	MaxDependencies int    `mapstructure:"max_dependencies"`
	MaxIssues       int    `mapstructure:"max_issues"`
	PolicyPath      string `mapstructure:"policy_path"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// UploadLimitBytes caps the accepted archive size on /scan/upload.
	UploadLimitBytes int64 `mapstructure:"upload_limit_bytes"`
}

var defaultConfig = Config{
	Scan: ScanConfig{
		MaxDepth:        5,
		MaxDependencies: 50,
		MaxIssues:       10,
		PolicyPath:      "",
	},
	Server: ServerConfig{
		Host:             "127.0.0.1",
		Port:             8400,
		UploadLimitBytes: 32 << 20,
	},
}

// LoadConfig loads configuration from defaults, config files, and
// LICET_* environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("scan.max_depth", defaultConfig.Scan.MaxDepth)
	v.SetDefault("scan.max_dependencies", defaultConfig.Scan.MaxDependencies)
	v.SetDefault("scan.max_issues", defaultConfig.Scan.MaxIssues)
	v.SetDefault("scan.policy_path", defaultConfig.Scan.PolicyPath)
	v.SetDefault("server.host", defaultConfig.Server.Host)
	v.SetDefault("server.port", defaultConfig.Server.Port)
	v.SetDefault("server.upload_limit_bytes", defaultConfig.Server.UploadLimitBytes)

	// Configuration file search paths
	v.SetConfigName("licet")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	if configDir, err := GetConfigDir(); err == nil {
		v.AddConfigPath(configDir)
	}

	// Environment variables
	v.SetEnvPrefix("LICET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when none is found
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}

// GetLicetHome returns the licet home directory (~/.licet or LICET_HOME)
func GetLicetHome() (string, error) {
	if home := os.Getenv("LICET_HOME"); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %v", err)
	}

	return filepath.Join(homeDir, ".licet"), nil
}

// EnsureLicetHome creates the licet home directory if it doesn't exist
func EnsureLicetHome() (string, error) {
	homeDir, err := GetLicetHome()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(homeDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create licet home directory: %v", err)
	}

	return homeDir, nil
}

// GetConfigDir returns the config directory within the licet home
func GetConfigDir() (string, error) {
	homeDir, err := EnsureLicetHome()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, "config")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %v", err)
	}
	return configDir, nil
}

// GetWorkDir returns the work directory for scan uploads
func GetWorkDir() (string, error) {
	homeDir, err := EnsureLicetHome()
	if err != nil {
		return "", err
	}
	workDir := filepath.Join(homeDir, "work")
	if err := os.MkdirAll(workDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create work directory: %v", err)
	}
	return workDir, nil
}

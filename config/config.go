package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "MLF_"

// Config holds the deployment settings of the form filler.
type Config struct {
	TemplatePath string
	ImagePath    string
	LayoutPath   string
	Municipality string
	Province     string
	LogLevel     string
	LogFilePath  string
}

// Load reads envFile (".env" when empty) into the process environment and builds a Config
// from MLF_* variables. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	return &Config{
		TemplatePath: getEnvString("TEMPLATE_PATH", filepath.Join("data", "APPLICATION-for-MARRIAGE-LICENSE.xlsx")),
		ImagePath:    getEnvString("IMAGE_PATH", filepath.Join("data", "couple_img.png")),
		LayoutPath:   getEnvString("LAYOUT_PATH", ""),
		Municipality: getEnvString("MUNICIPALITY", "SOLANO"),
		Province:     getEnvString("PROVINCE", "NUEVA VIZCAYA"),
		LogLevel:     getEnvString("LOG_LEVEL", "info"),
		LogFilePath:  getEnvString("LOG_FILE_PATH", ""),
	}, nil
}

// Jurisdiction returns the local "<MUNICIPALITY>, <PROVINCE>" string addresses are compared with.
func (c *Config) Jurisdiction() string {
	return strings.ToUpper(strings.TrimSpace(c.Municipality) + ", " + strings.TrimSpace(c.Province))
}

// Resolve makes relative file paths absolute against baseDir. Empty paths stay empty.
func (c *Config) Resolve(baseDir string) {
	c.TemplatePath = resolvePath(baseDir, c.TemplatePath)
	c.ImagePath = resolvePath(baseDir, c.ImagePath)
	c.LayoutPath = resolvePath(baseDir, c.LayoutPath)
	c.LogFilePath = resolvePath(baseDir, c.LogFilePath)
}

// ExecutableDir is the directory relative deployment paths are resolved against.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}

func getEnvString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(envPrefix + key)); val != "" {
		return val
	}
	return fallback
}

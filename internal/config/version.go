package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultVersion is reported when neither APP_VERSION nor a VERSION file is available
const DefaultVersion = "0.1.0"

// GetVersion returns version from environment variable or the VERSION file
func GetVersion() string {
	// Set by CI/CD
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}
	return readVersionFile(".", "..")
}

// readVersionFile returns the first non-empty VERSION file found in dirs
func readVersionFile(dirs ...string) string {
	for _, dir := range dirs {
		content, err := os.ReadFile(filepath.Join(dir, "VERSION"))
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}
	return DefaultVersion
}

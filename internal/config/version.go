package config

import (
	"os"
	"runtime/debug"
	"strings"
)

// fallbackVersion is reported for local builds without module information
const fallbackVersion = "0.1.0"

// GetVersion returns version from environment variable or the build info
func GetVersion() string {
	// Set by CI/CD
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}
	return buildVersion(debug.ReadBuildInfo())
}

// buildVersion reads the main module version, stripping the leading v
func buildVersion(info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil {
		return fallbackVersion
	}
	v := info.Main.Version
	if v == "" || v == "(devel)" {
		return fallbackVersion
	}
	return strings.TrimPrefix(v, "v")
}

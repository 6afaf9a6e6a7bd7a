package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
)

// GenerateRunFolderPath generates a consistent folder path for one analysis run
// Format: YYYY/MM/DD/<Label>-<Model>-YYYY-MM-DD-HH-MM-SS
func GenerateRunFolderPath(timestamp time.Time, label, model string) string {
	name := strings.Trim(slug(label)+"-"+slug(model), "-")
	if name == "" {
		name = "ForecastChart"
	}
	return fmt.Sprintf("%04d/%02d/%02d/%s-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		name,
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// FrameFileName names the nth frame of a run, e.g. frame-007.png
func FrameFileName(n int, ext string) string {
	return fmt.Sprintf("frame-%03d.%s", n, strings.TrimPrefix(ext, "."))
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".html":
		return "text/html"
	case ".txt":
		return "text/plain"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// slug keeps letters, digits and dashes
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}

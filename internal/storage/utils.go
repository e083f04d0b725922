package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// ReportIndexFile is the page every report folder is listed by
const ReportIndexFile = "index.html"

// GenerateReportFolderPath generates a consistent folder path for reports
// Format: YYYY/MM/DD/EnergyChart-YYYY-MM-DD-HH-MM-SS
func GenerateReportFolderPath(timestamp time.Time) string {
	t := timestamp.UTC()
	return fmt.Sprintf("%04d/%02d/%02d/EnergyChart-%04d-%02d-%02d-%02d-%02d-%02d",
		t.Year(), t.Month(), t.Day(),
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second())
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".html":
		return "text/html; charset=utf-8"
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// newestFirst sorts report paths in reverse lexical order and applies limit.
// Folder names embed the timestamp, so lexical order is chronological.
func newestFirst(paths []string, limit int) []string {
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths
}

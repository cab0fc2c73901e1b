package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GenerateOutputPath creates a timestamped output filename in dir
func GenerateOutputPath(dir, name, ext string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	clean := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if clean == "" {
		clean = "sequence"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", clean, timestamp, ext))
}

// ListRoutes returns the YAML route files in dir, newest first
func ListRoutes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes directory: %w", err)
	}

	var routes []string
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if !entry.IsDir() && (strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			routes = append(routes, filepath.Join(dir, entry.Name()))
		}
	}

	// Sort by modification time (newest first)
	sort.SliceStable(routes, func(i, j int) bool {
		infoI, errI := os.Stat(routes[i])
		infoJ, errJ := os.Stat(routes[j])
		if errI != nil || errJ != nil {
			return false
		}
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return routes, nil
}

// FindLatestRoute finds the most recent route file in dir
func FindLatestRoute(dir string) (string, error) {
	routes, err := ListRoutes(dir)
	if err != nil {
		return "", err
	}

	if len(routes) == 0 {
		return "", fmt.Errorf("no route files found in %s", dir)
	}

	return routes[0], nil
}

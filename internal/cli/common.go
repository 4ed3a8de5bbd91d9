package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
)

// Version information for all CLI tools
const (
	Version   = "1.0.0"
	BuildDate = "2026-10-15"
)

// CommitSHA is set with -ldflags at build time.
var CommitSHA = "unknown"

// VersionInfo contains version and build information
type VersionInfo struct {
	Version        string `json:"version"`
	CatalogVersion string `json:"catalog_version,omitempty"`
	BuildDate      string `json:"build_date"`
	CommitSHA      string `json:"commit_sha"`
	GoVersion      string `json:"go_version"`
	Platform       string `json:"platform"`
	Arch           string `json:"arch"`
}

// GetVersionInfo returns structured version information. catalog is the
// node catalog version the tool was built with.
func GetVersionInfo(catalog string) *VersionInfo {
	return &VersionInfo{
		Version:        Version,
		CatalogVersion: catalog,
		BuildDate:      BuildDate,
		CommitSHA:      CommitSHA,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS,
		Arch:           runtime.GOARCH,
	}
}

// PrintVersion prints version information in a consistent format
func PrintVersion(w io.Writer, toolName, catalog string, jsonOutput bool) {
	info := GetVersionInfo(catalog)

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err == nil {
			fmt.Fprintln(w, string(data))
			return
		}
		// Fallback to plain text if JSON marshaling fails
		fmt.Fprintf(os.Stderr, "Error: Failed to marshal version info to JSON: %v\n", err)
	}

	fmt.Fprintf(w, "%s v%s\n", toolName, info.Version)
	if info.CatalogVersion != "" {
		fmt.Fprintf(w, "Node catalog: %s\n", info.CatalogVersion)
	}
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
}

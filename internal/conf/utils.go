package conf

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "birdcatalog"

// GetDefaultConfigPaths returns the directories searched for config.yaml, in
// priority order. The working directory always comes first.
func GetDefaultConfigPaths() []string {
	paths := []string{"."}

	homeDir, err := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		if err == nil {
			paths = append(paths, filepath.Join(homeDir, "AppData", "Roaming", appDirName))
		}
		return paths
	}

	if err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", appDirName))
	}
	return append(paths, filepath.Join("/etc", appDirName))
}

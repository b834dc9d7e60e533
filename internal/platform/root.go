package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ProjectConfigName is the per-project config file looked up by FindProjectConfig.
const ProjectConfigName = ".localnotes.json"

// ErrNoProjectConfig is returned when no project config exists up to the filesystem root.
var ErrNoProjectConfig = errors.New("project config not found")

// FindProjectConfig looks upwards from startDir for a ProjectConfigName file
// and returns its absolute path.
func FindProjectConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectConfig
		}
		dir = parent
	}
}

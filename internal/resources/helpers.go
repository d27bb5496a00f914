package resources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JC67999/best-practice/internal/project"
)

// findResourceRoot walks up from cwd looking for a managed project
// (.project_manager/project_data.json). Falls back to cwd.
func findResourceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, project.ManagerDir, project.DataFile)
		if _, err := os.Stat(candidate); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

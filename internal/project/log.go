package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JC67999/best-practice/internal/tasks"
)

// CompletionLogPath returns the append-only log of finished tasks.
func CompletionLogPath(projectRoot string) string {
	return filepath.Join(projectRoot, "artifacts", "logs", "completed-actions.log")
}

// AppendCompletionLog records a finished task in the artifacts log. The log
// is append-only; entries are never rewritten.
func AppendCompletionLog(projectRoot string, task tasks.Task) error {
	path := CompletionLogPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening completion log: %w", err)
	}
	defer f.Close()

	entry := fmt.Sprintf("[%s] TASK COMPLETED: %s\n",
		timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"), task.Description)
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("writing completion log: %w", err)
	}
	return nil
}

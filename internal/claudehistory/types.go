package claudehistory

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const EnvClaudeDir = "CLAUDE_CONFIG_DIR"

// Session is one unit of prior work aggregated from the history log.
// Immutable once a scan has produced it.
type Session struct {
	SessionID    string    `json:"sessionId"`
	ProjectPath  string    `json:"projectPath"`
	Displays     []string  `json:"displays"`
	MessageCount int       `json:"messageCount"`
	Modified     time.Time `json:"modified"`
	GitBranch    string    `json:"gitBranch,omitempty"`
}

// ProjectName is the last element of the project path, or empty.
func (s Session) ProjectName() string {
	path := strings.TrimSpace(s.ProjectPath)
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// WorktreeName reports the worktree this session ran in, derived from the
// project path: set only when the parent directory is a worktree container.
func (s Session) WorktreeName() string {
	path := strings.TrimSpace(s.ProjectPath)
	if path == "" {
		return ""
	}
	switch filepath.Base(filepath.Dir(path)) {
	case "worktrees", ".worktrees":
		return filepath.Base(path)
	}
	return ""
}

// Description picks a human-readable label from the session's displays.
func (s Session) Description() string {
	return chooseDescription(s.Displays)
}

func DefaultClaudeDir() string {
	if v := os.Getenv(EnvClaudeDir); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude")
}

func ResolveClaudeDir(override string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return filepath.Clean(os.ExpandEnv(v)), nil
	}
	if v := strings.TrimSpace(os.Getenv(EnvClaudeDir)); v != "" {
		return filepath.Clean(os.ExpandEnv(v)), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude"), nil
}

package claudehistory

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// branchPeekBytes bounds how much of a transcript is read for metadata,
// regardless of transcript size.
const branchPeekBytes = 4096

// transcriptPaths walks projectsDir once and maps session id (filename stem)
// to transcript path. Walk errors are skipped.
func transcriptPaths(projectsDir string) map[string]string {
	paths := map[string]string{}
	_ = filepath.WalkDir(projectsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".jsonl") {
			return nil
		}
		stem := strings.TrimSuffix(name, ".jsonl")
		if stem == "" {
			return nil
		}
		if _, ok := paths[stem]; !ok {
			paths[stem] = path
		}
		return nil
	})
	return paths
}

// peekGitBranch reads at most branchPeekBytes of a transcript and returns
// the first gitBranch value on its leading JSON lines that names a real
// branch (not a detached HEAD). Returns empty on any failure.
func peekGitBranch(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, branchPeekBytes)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return ""
	}
	head = head[:n]

	for _, line := range bytes.Split(head, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var entry struct {
			GitBranch string `json:"gitBranch"`
		}
		if json.Unmarshal(line, &entry) != nil {
			// Typically the truncated final line of the peek window.
			continue
		}
		branch := strings.TrimSpace(entry.GitBranch)
		if branch != "" && branch != "HEAD" {
			return branch
		}
	}
	return ""
}

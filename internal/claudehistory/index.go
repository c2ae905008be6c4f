package claudehistory

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// historyRecord maps to one line of <claudeDir>/history.jsonl:
//
//	{"sessionId":"uuid","project":"/path","timestamp":1770777540123,"display":"user input"}
type historyRecord struct {
	SessionID string `json:"sessionId"`
	Project   string `json:"project"`
	Timestamp int64  `json:"timestamp"`
	Display   string `json:"display"`
}

// Indexer parses the history log into per-session aggregates and memoizes
// the result through an optional Cache.
type Indexer struct {
	claudeDir string
	cache     Cache
	ttl       time.Duration
	now       func() time.Time
}

// NewIndexer returns an Indexer rooted at claudeDir. A nil cache disables
// memoization.
func NewIndexer(claudeDir string, cache Cache) *Indexer {
	return &Indexer{
		claudeDir: claudeDir,
		cache:     cache,
		ttl:       DefaultTTL,
		now:       time.Now,
	}
}

// Index returns all sessions sorted by modification time, newest first.
// A fresh cache snapshot short-circuits the scan; otherwise the log is
// re-read and the snapshot replaced. An unreadable log yields an empty
// list, never an error.
func (ix *Indexer) Index() []Session {
	if ix.cache != nil {
		if snap, ok := ix.cache.Read(); ok && ix.fresh(snap) {
			return snap.Sessions
		}
	}

	sessions, ok := ix.scan()
	if !ok {
		return nil
	}

	if ix.cache != nil {
		ix.cache.Write(Snapshot{
			Sessions:  sessions,
			Timestamp: ix.now().UnixMilli(),
		})
	}
	return sessions
}

func (ix *Indexer) fresh(snap Snapshot) bool {
	age := ix.now().Sub(time.UnixMilli(snap.Timestamp))
	return age >= 0 && age < ix.ttl
}

func (ix *Indexer) scan() ([]Session, bool) {
	f, err := os.Open(filepath.Join(ix.claudeDir, "history.jsonl"))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	order := []string{}
	byID := map[string]*Session{}

	reader := bufio.NewReaderSize(f, 64*1024)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			break
		}
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			foldRecord(line, byID, &order)
		}
		if err == io.EOF {
			break
		}
	}

	sessions := make([]Session, 0, len(order))
	for _, id := range order {
		sessions = append(sessions, *byID[id])
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Modified.After(sessions[j].Modified)
	})

	ix.resolveBranches(sessions)
	return sessions, true
}

// foldRecord merges one log line into the per-session aggregates. Malformed
// lines and lines without a session id are skipped.
func foldRecord(line []byte, byID map[string]*Session, order *[]string) {
	var rec historyRecord
	if json.Unmarshal(line, &rec) != nil {
		return
	}
	if rec.SessionID == "" {
		return
	}

	sess := byID[rec.SessionID]
	if sess == nil {
		sess = &Session{SessionID: rec.SessionID}
		byID[rec.SessionID] = sess
		*order = append(*order, rec.SessionID)
	}

	if rec.Project != "" {
		sess.ProjectPath = rec.Project
	}
	if rec.Display != "" {
		sess.Displays = append(sess.Displays, rec.Display)
		sess.MessageCount = len(sess.Displays)
	}
	if rec.Timestamp > 0 {
		ts := time.UnixMilli(rec.Timestamp)
		if ts.After(sess.Modified) {
			sess.Modified = ts
		}
	}
}

func (ix *Indexer) resolveBranches(sessions []Session) {
	if len(sessions) == 0 {
		return
	}
	transcripts := transcriptPaths(filepath.Join(ix.claudeDir, "projects"))
	if len(transcripts) == 0 {
		return
	}
	for i := range sessions {
		path, ok := transcripts[sessions[i].SessionID]
		if !ok {
			continue
		}
		sessions[i].GitBranch = peekGitBranch(path)
	}
}

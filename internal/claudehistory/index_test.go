package claudehistory

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeHistory(t *testing.T, dir string, lines ...string) {
	t.Helper()
	var body string
	for _, l := range lines {
		body += l + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, "history.jsonl"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestIndexOrdersByRecency(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir,
		`{"sessionId":"s1","project":"/p/one","timestamp":1000,"display":"first"}`,
		`{"sessionId":"s2","project":"/p/two","timestamp":2000,"display":"second"}`,
		`{"sessionId":"s3","project":"/p/three","timestamp":3000,"display":"third"}`,
	)

	sessions := NewIndexer(dir, nil).Index()
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	for i, want := range []string{"s3", "s2", "s1"} {
		if sessions[i].SessionID != want {
			t.Errorf("sessions[%d] = %s, want %s", i, sessions[i].SessionID, want)
		}
	}
}

func TestIndexAggregatesPerSession(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir,
		`{"sessionId":"s1","project":"/old","timestamp":5000,"display":"one"}`,
		`{"sessionId":"s1","project":"","timestamp":1000,"display":"two"}`,
		`{"sessionId":"s1","project":"/new","timestamp":9000,"display":"three"}`,
	)

	sessions := NewIndexer(dir, nil).Index()
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	s := sessions[0]
	if s.ProjectPath != "/new" {
		t.Errorf("ProjectPath = %q, want /new (latest non-empty wins)", s.ProjectPath)
	}
	if s.MessageCount != 3 || len(s.Displays) != 3 {
		t.Errorf("MessageCount = %d, Displays = %v", s.MessageCount, s.Displays)
	}
	if s.Displays[0] != "one" || s.Displays[2] != "three" {
		t.Errorf("displays out of order: %v", s.Displays)
	}
	if !s.Modified.Equal(time.UnixMilli(9000)) {
		t.Errorf("Modified = %v, want %v", s.Modified, time.UnixMilli(9000))
	}
}

func TestIndexSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir,
		`not json at all`,
		`{"project":"/p","timestamp":1,"display":"no id"}`,
		``,
		`{"sessionId":"ok","project":"/p","timestamp":42,"display":"kept"}`,
	)

	sessions := NewIndexer(dir, nil).Index()
	if len(sessions) != 1 || sessions[0].SessionID != "ok" {
		t.Fatalf("got %+v, want the single valid session", sessions)
	}
}

func TestIndexMissingLog(t *testing.T) {
	sessions := NewIndexer(t.TempDir(), nil).Index()
	if len(sessions) != 0 {
		t.Fatalf("missing log must yield no sessions, got %d", len(sessions))
	}
}

func TestIndexMissingLogSkipsCacheWrite(t *testing.T) {
	cache := &memoryCache{}
	NewIndexer(t.TempDir(), cache).Index()
	if _, ok := cache.Read(); ok {
		t.Fatal("failed scan must not replace the cache snapshot")
	}
}

func TestIndexUsesFreshCache(t *testing.T) {
	now := time.UnixMilli(100_000)
	cache := &memoryCache{}
	cache.Write(Snapshot{
		Sessions:  []Session{{SessionID: "cached"}},
		Timestamp: now.Add(-10 * time.Second).UnixMilli(),
	})

	ix := NewIndexer(t.TempDir(), cache)
	ix.now = func() time.Time { return now }

	sessions := ix.Index()
	if len(sessions) != 1 || sessions[0].SessionID != "cached" {
		t.Fatalf("fresh cache must short-circuit the scan, got %+v", sessions)
	}
}

func TestIndexRescanOnExpiredCache(t *testing.T) {
	now := time.UnixMilli(100_000)
	dir := t.TempDir()
	writeHistory(t, dir,
		`{"sessionId":"live","project":"/p","timestamp":1,"display":"x"}`,
	)

	cache := &memoryCache{}
	cache.Write(Snapshot{
		Sessions:  []Session{{SessionID: "stale"}},
		Timestamp: now.Add(-DefaultTTL).UnixMilli(),
	})

	ix := NewIndexer(dir, cache)
	ix.now = func() time.Time { return now }

	sessions := ix.Index()
	if len(sessions) != 1 || sessions[0].SessionID != "live" {
		t.Fatalf("expired cache must rescan, got %+v", sessions)
	}
	snap, ok := cache.Read()
	if !ok || snap.Timestamp != now.UnixMilli() {
		t.Fatalf("rescan must refresh the snapshot, got %+v ok=%v", snap, ok)
	}
}

func TestIndexRejectsFutureSnapshot(t *testing.T) {
	now := time.UnixMilli(100_000)
	ix := NewIndexer(t.TempDir(), nil)
	ix.now = func() time.Time { return now }
	if ix.fresh(Snapshot{Timestamp: now.Add(time.Minute).UnixMilli()}) {
		t.Fatal("snapshot from the future must not count as fresh")
	}
}

func TestIndexResolvesGitBranch(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir,
		`{"sessionId":"s1","project":"/p","timestamp":1,"display":"x"}`,
	)
	tdir := filepath.Join(dir, "projects", "-p")
	if err := os.MkdirAll(tdir, 0o755); err != nil {
		t.Fatal(err)
	}
	transcript := `{"gitBranch":"HEAD"}` + "\n" + `{"gitBranch":"feature/login"}` + "\n"
	if err := os.WriteFile(filepath.Join(tdir, "s1.jsonl"), []byte(transcript), 0o600); err != nil {
		t.Fatal(err)
	}

	sessions := NewIndexer(dir, nil).Index()
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions", len(sessions))
	}
	if sessions[0].GitBranch != "feature/login" {
		t.Errorf("GitBranch = %q, want feature/login", sessions[0].GitBranch)
	}
}

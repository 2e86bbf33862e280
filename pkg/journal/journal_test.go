package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jg-phare/esl/pkg/frame"
)

func TestJournal_RecordSyncAppendsOneLinePerMessage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")

	j, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer j.Close()

	headers := frame.NewHeaders()
	headers.Set("Content-Type", "text/event-json")
	msg := frame.NewMessage(headers, map[string]any{"Event-Name": "HEARTBEAT"})

	if err := j.RecordSync(msg); err != nil {
		t.Fatalf("RecordSync returned error: %v", err)
	}
	if err := j.RecordSync(msg); err != nil {
		t.Fatalf("second RecordSync returned error: %v", err)
	}

	if err := j.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal file: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	count := 0
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", count, err)
		}
		if rec["event_name"] != "HEARTBEAT" {
			t.Fatalf("expected event_name HEARTBEAT, got %v", rec["event_name"])
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 journaled lines, got %d", count)
	}
}

package extractor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDoc writes an event document under dir with the given filename.
func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const sampleEvents = `[
	{"type": {"name": "Pass"}, "minute": 3, "team": {"name": "Arsenal"}},
	{
		"type": {"name": "Shot"},
		"minute": 12, "second": 30,
		"location": [113.0, 40.0],
		"team": {"name": "Arsenal"},
		"player": {"name": "Alexis Sánchez"},
		"play_pattern": {"name": "Regular Play"},
		"shot": {
			"outcome": {"name": "Goal"},
			"body_part": {"name": "Left Foot"},
			"technique": {"name": "Normal"}
		}
	},
	{"type": {"name": "Pressure"}, "minute": 13}
]`

func TestExtractFile_FiltersToShots(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "3754058.json", sampleEvents)

	shots, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if len(shots) != 1 {
		t.Fatalf("len(shots) = %d, want 1 (only Shot events)", len(shots))
	}

	s := shots[0]
	if s.MatchID != 3754058 {
		t.Errorf("MatchID = %d, want 3754058 (from file stem)", s.MatchID)
	}
	if s.Team != "Arsenal" || s.Player != "Alexis Sánchez" {
		t.Errorf("team/player = %q/%q", s.Team, s.Player)
	}
	if s.Minute != 12 || s.Second != 30 {
		t.Errorf("minute/second = %d/%d, want 12/30", s.Minute, s.Second)
	}
	if s.X == nil || *s.X != 113.0 || s.Y == nil || *s.Y != 40.0 {
		t.Errorf("location = %v/%v, want 113/40", s.X, s.Y)
	}
	if s.Outcome != "Goal" || s.BodyPart != "Left Foot" || s.Technique != "Normal" {
		t.Errorf("shot attrs = %q/%q/%q", s.Outcome, s.BodyPart, s.Technique)
	}
	if s.PlayPattern != "Regular Play" {
		t.Errorf("PlayPattern = %q", s.PlayPattern)
	}
}

// TestExtractFile_MissingGroups: absent nested groups become nulls/empty,
// never an error, and the record is kept.
func TestExtractFile_MissingGroups(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "7.json", `[{"type": {"name": "Shot"}}]`)

	shots, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if len(shots) != 1 {
		t.Fatalf("len(shots) = %d, want 1", len(shots))
	}
	s := shots[0]
	if s.X != nil || s.Y != nil {
		t.Errorf("expected nil coordinates, got %v/%v", s.X, s.Y)
	}
	if s.Team != "" || s.Player != "" || s.Outcome != "" || s.BodyPart != "" || s.Technique != "" {
		t.Errorf("expected empty string fields, got %+v", s)
	}
}

// TestExtractFile_ShortLocation: a 1-element location yields x set and y null.
func TestExtractFile_ShortLocation(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "8.json", `[{"type": {"name": "Shot"}, "location": [50.5]}]`)

	shots, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	s := shots[0]
	if s.X == nil || *s.X != 50.5 {
		t.Errorf("X = %v, want 50.5", s.X)
	}
	if s.Y != nil {
		t.Errorf("Y = %v, want nil", s.Y)
	}
}

// TestExtractFile_CaseSensitiveType: "shot" is not "Shot".
func TestExtractFile_CaseSensitiveType(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "9.json", `[{"type": {"name": "shot"}}]`)

	shots, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if len(shots) != 0 {
		t.Errorf("len(shots) = %d, want 0", len(shots))
	}
}

// TestExtractFile_Malformed: a document that fails to parse is fatal and the
// error names the file.
func TestExtractFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "10.json", `{"not": "an array"`)

	_, err := ExtractFile(path)
	if err == nil {
		t.Fatal("expected error for malformed document")
	}
	if !strings.Contains(err.Error(), "10.json") {
		t.Errorf("error %q does not name the offending file", err)
	}
}

func TestExtractFile_NonNumericStem(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "notes.json", `[]`)

	if _, err := ExtractFile(path); err == nil {
		t.Fatal("expected error for non-numeric file stem")
	}
}

func TestExtractDir(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "2.json", `[{"type": {"name": "Shot"}, "location": [100, 30]}]`)
	writeDoc(t, dir, "1.json", sampleEvents)

	shots, err := ExtractDir(dir)
	if err != nil {
		t.Fatalf("ExtractDir: %v", err)
	}
	if len(shots) != 2 {
		t.Fatalf("len(shots) = %d, want 2", len(shots))
	}
	// Files are processed in name order.
	if shots[0].MatchID != 1 || shots[1].MatchID != 2 {
		t.Errorf("match ids = %d, %d, want 1, 2", shots[0].MatchID, shots[1].MatchID)
	}
}

// TestExtractDir_PropagatesFileError: one bad document fails the whole run,
// publishing nothing.
func TestExtractDir_PropagatesFileError(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "1.json", sampleEvents)
	writeDoc(t, dir, "2.json", `garbage`)

	if _, err := ExtractDir(dir); err == nil {
		t.Fatal("expected error when one document is malformed")
	}
}

func TestExtractDir_Empty(t *testing.T) {
	if _, err := ExtractDir(t.TempDir()); err == nil {
		t.Fatal("expected error for empty events directory")
	}
}

// Package extractor flattens raw match-event documents into shot records.
package extractor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pable/go-xg-metrics/internal/model"
)

// shotEventType is the source vocabulary name for shot events. The match is
// exact and case-sensitive.
const shotEventType = "Shot"

// nameObj is the {"name": ...} wrapper the source uses for labelled values.
type nameObj struct {
	Name string `json:"name"`
}

// rawEvent mirrors the slice of the source event schema we care about.
// Every nested group is optional; a missing group decodes to nil.
type rawEvent struct {
	Type        *nameObj  `json:"type"`
	Minute      int       `json:"minute"`
	Second      int       `json:"second"`
	Location    []float64 `json:"location"`
	Team        *nameObj  `json:"team"`
	Player      *nameObj  `json:"player"`
	PlayPattern *nameObj  `json:"play_pattern"`
	Shot        *rawShot  `json:"shot"`
}

type rawShot struct {
	Outcome   *nameObj `json:"outcome"`
	BodyPart  *nameObj `json:"body_part"`
	Technique *nameObj `json:"technique"`
}

// ExtractDir extracts shot events from every *.json document in dir, in
// filename order. A document that fails to parse is fatal for the run; the
// error names the offending file.
func ExtractDir(dir string) ([]model.ShotEvent, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob events dir: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no event documents found in %s", dir)
	}
	sort.Strings(paths)

	var shots []model.ShotEvent
	for _, path := range paths {
		fileShots, err := ExtractFile(path)
		if err != nil {
			return nil, err
		}
		shots = append(shots, fileShots...)
	}
	return shots, nil
}

// ExtractFile extracts the shot events from a single per-match document.
// The file stem is the match identifier.
func ExtractFile(path string) ([]model.ShotEvent, error) {
	matchID, err := matchIDFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var events []rawEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var shots []model.ShotEvent
	for _, e := range events {
		if e.Type == nil || e.Type.Name != shotEventType {
			continue
		}
		shots = append(shots, flatten(matchID, e))
	}
	return shots, nil
}

// flatten turns one raw shot event into a flat record. Absent groups or leaf
// fields become nulls (or ""), never errors; a record is never skipped for
// missing nested fields.
func flatten(matchID int64, e rawEvent) model.ShotEvent {
	s := model.ShotEvent{
		MatchID:     matchID,
		Team:        objName(e.Team),
		Player:      objName(e.Player),
		Minute:      e.Minute,
		Second:      e.Second,
		PlayPattern: objName(e.PlayPattern),
	}
	if len(e.Location) > 0 {
		x := e.Location[0]
		s.X = &x
	}
	if len(e.Location) > 1 {
		y := e.Location[1]
		s.Y = &y
	}
	if e.Shot != nil {
		s.Outcome = objName(e.Shot.Outcome)
		s.BodyPart = objName(e.Shot.BodyPart)
		s.Technique = objName(e.Shot.Technique)
	}
	return s
}

func objName(o *nameObj) string {
	if o == nil {
		return ""
	}
	return o.Name
}

func matchIDFromPath(path string) (int64, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("match id from %s: %w", path, err)
	}
	return id, nil
}

// Package artifact reads and writes the JSON pipeline artifacts (the fitted
// model and its metric report).
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pable/go-xg-metrics/internal/model"
)

// Default artifact filenames under the data directory.
const (
	ModelFile  = "models/xg_model.json"
	ReportFile = "reports/metrics.json"
)

// WriteJSON marshals v and writes it to path via WriteBytes.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	data = append(data, '\n')
	return WriteBytes(path, data)
}

// WriteBytes writes data to path atomically: the document is written to a
// temporary file in the target directory and renamed into place, so readers
// see either the old complete artifact or the new one.
func WriteBytes(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish %s: %w", path, err)
	}
	return nil
}

// ReadJSON unmarshals the document at path into v. A missing file surfaces
// as an fs.ErrNotExist-wrapped error so callers at the display boundary can
// degrade instead of failing.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// WriteModel persists a fitted model to path.
func WriteModel(path string, m *model.LinearModel) error {
	return WriteJSON(path, m)
}

// ReadModel loads a persisted model from path and checks it is usable
// without re-training.
func ReadModel(path string) (*model.LinearModel, error) {
	var m model.LinearModel
	if err := ReadJSON(path, &m); err != nil {
		return nil, err
	}
	if len(m.Features) == 0 {
		return nil, fmt.Errorf("model %s has no features", path)
	}
	for _, name := range m.Features {
		if _, ok := m.Coefficients[name]; !ok {
			return nil, fmt.Errorf("model %s missing coefficient for %q", path, name)
		}
	}
	return &m, nil
}

// WriteReport persists a metric report to path.
func WriteReport(path string, r *model.MetricReport) error {
	return WriteJSON(path, r)
}

// ReadReport loads a metric report from path.
func ReadReport(path string) (*model.MetricReport, error) {
	var r model.MetricReport
	if err := ReadJSON(path, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Package scorer applies a persisted xG model to feature records.
package scorer

import (
	"fmt"

	"github.com/pable/go-xg-metrics/internal/model"
)

// Score attaches a goal probability to every feature record. The whole
// population is re-scored regardless of which rows were used in training;
// that is a documented property of the pipeline, not a leakage oversight.
// Output cardinality always equals input cardinality.
func Score(records []model.FeatureRecord, m *model.LinearModel) ([]model.ScoredShot, error) {
	if m == nil {
		return nil, fmt.Errorf("nil model")
	}
	if len(m.Features) == 0 {
		return nil, fmt.Errorf("model has no features")
	}
	for _, name := range m.Features {
		if _, ok := m.Coefficients[name]; !ok {
			return nil, fmt.Errorf("model missing coefficient for %q", name)
		}
	}

	scored := make([]model.ScoredShot, len(records))
	for i := range records {
		scored[i] = model.ScoredShot{
			FeatureRecord: records[i],
			XG:            m.Predict(records[i].FeatureVector()),
		}
	}
	return scored, nil
}

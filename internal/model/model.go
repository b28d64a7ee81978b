package model

import "math"

// ---- Raw shot records emitted by the extractor (silver layer) ----

// ShotEvent is one flattened shot taken from a raw match-event document.
// Coordinates are nullable because the source omits location on some events;
// string fields use "" for an absent value.
type ShotEvent struct {
	MatchID     int64
	Team        string
	Player      string
	Minute      int
	Second      int
	X, Y        *float64
	Outcome     string
	BodyPart    string
	Technique   string
	PlayPattern string
}

// HasLocation reports whether both pitch coordinates are present.
func (s *ShotEvent) HasLocation() bool {
	return s.X != nil && s.Y != nil
}

// ---- Derived records (gold layer) ----

// FeatureRecord is a ShotEvent plus the derived label, geometry, and
// indicator features. Records without coordinates never become
// FeatureRecords; Distance and Angle are always set.
type FeatureRecord struct {
	ShotEvent

	IsGoal    int
	Distance  float64
	Angle     float64
	IsHeader  int
	IsPenalty int
}

// ScoredShot is a FeatureRecord with the model's goal probability attached.
type ScoredShot struct {
	FeatureRecord

	XG float64
}

// ---- Model artifacts ----

// Feature names in the order the model was fitted. Shared by trainer,
// scorer, and the persisted artifacts.
const (
	FeatureDistance  = "distance"
	FeatureAngle     = "angle"
	FeatureIsHeader  = "is_header"
	FeatureIsPenalty = "is_penalty"
)

// FeatureNames returns the canonical feature order.
func FeatureNames() []string {
	return []string{FeatureDistance, FeatureAngle, FeatureIsHeader, FeatureIsPenalty}
}

// FeatureVector returns the record's feature values keyed by feature name.
func (f *FeatureRecord) FeatureVector() map[string]float64 {
	return map[string]float64{
		FeatureDistance:  f.Distance,
		FeatureAngle:     f.Angle,
		FeatureIsHeader:  float64(f.IsHeader),
		FeatureIsPenalty: float64(f.IsPenalty),
	}
}

// LinearModel is a fitted logistic-form linear classifier. Coefficients are
// keyed by feature name so the artifact stays loadable if feature order in
// code ever changes.
type LinearModel struct {
	Features     []string           `json:"features"`
	Coefficients map[string]float64 `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
}

// Predict returns the goal probability for a feature vector.
func (m *LinearModel) Predict(x map[string]float64) float64 {
	z := m.Intercept
	for _, name := range m.Features {
		z += m.Coefficients[name] * x[name]
	}
	return Sigmoid(z)
}

// Sigmoid is the logistic function.
func Sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// MetricReport records a training run: split sizes, observed goal rate,
// validation-set calibration/ranking metrics, and the fitted parameters.
type MetricReport struct {
	RowsTotal    int                `json:"rows_total"`
	RowsTrain    int                `json:"rows_train"`
	RowsVal      int                `json:"rows_val"`
	GoalRate     float64            `json:"goal_rate"`
	LogLoss      float64            `json:"log_loss"`
	BrierScore   float64            `json:"brier_score"`
	ROCAUC       float64            `json:"roc_auc"`
	Features     []string           `json:"features"`
	Coefficients map[string]float64 `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
}

// ---- Aggregated metrics (gold layer, display-facing) ----

// TeamMetric is the per-team rollup of scored shots.
type TeamMetric struct {
	Team        string
	Shots       int
	Goals       int
	XG          float64
	GoalMinusXG float64
}

// PlayerMetric is the per-player rollup of scored shots.
type PlayerMetric struct {
	Player      string
	Shots       int
	Goals       int
	XG          float64
	GoalMinusXG float64
}

// TeamPlayerMetric is the per-(team, player) rollup; it exists so the
// display layer can filter players by team.
type TeamPlayerMetric struct {
	Team        string
	Player      string
	Shots       int
	Goals       int
	XG          float64
	GoalMinusXG float64
}

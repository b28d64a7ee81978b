// Package features derives shot geometry and label/indicator features from
// extracted shot events.
package features

import (
	"math"
	"strings"

	"github.com/pable/go-xg-metrics/internal/model"
)

// StatsBomb pitch coordinate system: 120 x 80, attacking goal at x = 120.
const (
	PitchLength = 120.0
	PitchWidth  = 80.0

	GoalX = PitchLength
	GoalY = PitchWidth / 2.0

	// Goal mouth is 8 units wide: posts at y = 36 and y = 44.
	GoalMouthWidth = 8.0
	LeftPostY      = GoalY - GoalMouthWidth/2.0
	RightPostY     = GoalY + GoalMouthWidth/2.0
)

// Marker values matched case-insensitively against source labels.
const (
	goalOutcome      = "goal"
	headerBodyPart   = "head"
	penaltyTechnique = "penalty"
)

// ShotDistance returns the Euclidean distance from (x, y) to the goal center.
func ShotDistance(x, y float64) float64 {
	return math.Sqrt((GoalX-x)*(GoalX-x) + (GoalY-y)*(GoalY-y))
}

// ShotAngle returns the angle subtended at (x, y) by the two goalposts, in
// radians. Computed via the law of cosines with the cosine clamped to
// [-1, 1] so floating-point rounding can't leave acos's domain. Degenerate
// geometry — a shot exactly on a post (zero denominator) or exactly at the
// goal center — is defined as angle 0 rather than an undefined value.
func ShotAngle(x, y float64) float64 {
	if x == GoalX && y == GoalY {
		return 0
	}

	a := math.Sqrt((GoalX-x)*(GoalX-x) + (LeftPostY-y)*(LeftPostY-y))
	b := math.Sqrt((GoalX-x)*(GoalX-x) + (RightPostY-y)*(RightPostY-y))
	c := RightPostY - LeftPostY

	denom := 2 * a * b
	if denom == 0 {
		return 0
	}
	cosTheta := (a*a + b*b - c*c) / denom
	cosTheta = math.Max(-1.0, math.Min(1.0, cosTheta))
	return math.Acos(cosTheta)
}

// IsGoal reports the 0/1 label for an outcome string.
func IsGoal(outcome string) int {
	return matchLabel(outcome, goalOutcome)
}

// IsHeader reports the 0/1 header indicator for a body-part string.
func IsHeader(bodyPart string) int {
	return matchLabel(bodyPart, headerBodyPart)
}

// IsPenalty reports the 0/1 penalty indicator for a technique string.
func IsPenalty(technique string) int {
	return matchLabel(technique, penaltyTechnique)
}

func matchLabel(value, marker string) int {
	if strings.ToLower(value) == marker {
		return 1
	}
	return 0
}

// Derive computes a FeatureRecord for every shot with complete coordinates.
// Shots missing x or y are dropped; the returned count is the number dropped.
// This is the pipeline's only data-quality filter.
func Derive(shots []model.ShotEvent) ([]model.FeatureRecord, int) {
	records := make([]model.FeatureRecord, 0, len(shots))
	dropped := 0

	for _, s := range shots {
		if !s.HasLocation() {
			dropped++
			continue
		}
		x, y := *s.X, *s.Y
		records = append(records, model.FeatureRecord{
			ShotEvent: s,
			IsGoal:    IsGoal(s.Outcome),
			Distance:  ShotDistance(x, y),
			Angle:     ShotAngle(x, y),
			IsHeader:  IsHeader(s.BodyPart),
			IsPenalty: IsPenalty(s.Technique),
		})
	}
	return records, dropped
}

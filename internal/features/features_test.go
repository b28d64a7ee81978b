package features

import (
	"math"
	"testing"

	"github.com/pable/go-xg-metrics/internal/model"
)

const eps = 1e-9

func fptr(v float64) *float64 { return &v }

// TestShotDistance_DirectlyInFront: (113, 40) is 7 units straight out from
// the goal center.
func TestShotDistance_DirectlyInFront(t *testing.T) {
	if d := ShotDistance(113, 40); math.Abs(d-7.0) > eps {
		t.Errorf("ShotDistance(113, 40) = %v, want 7.0", d)
	}
}

// TestShotOnGoalLine: a shot from the goal center itself has distance 0 and,
// per the zero-denominator rule, angle 0.
func TestShotOnGoalLine(t *testing.T) {
	if d := ShotDistance(120, 40); d != 0 {
		t.Errorf("ShotDistance(120, 40) = %v, want 0", d)
	}
	if a := ShotAngle(120, 40); a != 0 {
		t.Errorf("ShotAngle(120, 40) = %v, want 0", a)
	}
}

// TestShotAngle_OnPost: standing exactly on a post zeroes one sightline, so
// the angle is defined as 0 instead of dividing by zero.
func TestShotAngle_OnPost(t *testing.T) {
	if a := ShotAngle(GoalX, LeftPostY); a != 0 {
		t.Errorf("ShotAngle on left post = %v, want 0", a)
	}
	if a := ShotAngle(GoalX, RightPostY); a != 0 {
		t.Errorf("ShotAngle on right post = %v, want 0", a)
	}
}

// TestShotAngle_PenaltySpot: from (108, 40) both post distances are
// sqrt(160), giving cos = 0.8 by the law of cosines.
func TestShotAngle_PenaltySpot(t *testing.T) {
	want := math.Acos(0.8)
	if a := ShotAngle(108, 40); math.Abs(a-want) > eps {
		t.Errorf("ShotAngle(108, 40) = %v, want %v", a, want)
	}
}

// TestShotAngle_CollinearClamped: on the goal line outside the posts, the
// three points are collinear; rounding must not push acos out of domain.
func TestShotAngle_CollinearClamped(t *testing.T) {
	a := ShotAngle(120, 50)
	if math.IsNaN(a) {
		t.Fatal("ShotAngle(120, 50) is NaN; cosine not clamped")
	}
	if math.Abs(a) > eps {
		t.Errorf("ShotAngle(120, 50) = %v, want 0 (collinear)", a)
	}
}

// TestGeometry_RangeInvariants: distance >= 0 and angle in [0, pi] across a
// grid of pitch positions.
func TestGeometry_RangeInvariants(t *testing.T) {
	for x := 0.0; x <= PitchLength; x += 7.5 {
		for y := 0.0; y <= PitchWidth; y += 5.0 {
			if d := ShotDistance(x, y); d < 0 {
				t.Errorf("ShotDistance(%v, %v) = %v, want >= 0", x, y, d)
			}
			a := ShotAngle(x, y)
			if a < 0 || a > math.Pi {
				t.Errorf("ShotAngle(%v, %v) = %v, want in [0, pi]", x, y, a)
			}
		}
	}
}

// TestGeometry_Deterministic: equal inputs yield bit-identical outputs.
func TestGeometry_Deterministic(t *testing.T) {
	inputs := [][2]float64{{113, 40}, {97.3, 12.8}, {60.0001, 41.5}, {0, 0}}
	for _, in := range inputs {
		if ShotDistance(in[0], in[1]) != ShotDistance(in[0], in[1]) {
			t.Errorf("ShotDistance(%v, %v) not deterministic", in[0], in[1])
		}
		if ShotAngle(in[0], in[1]) != ShotAngle(in[0], in[1]) {
			t.Errorf("ShotAngle(%v, %v) not deterministic", in[0], in[1])
		}
	}
}

func TestIsGoal(t *testing.T) {
	cases := []struct {
		outcome string
		want    int
	}{
		{"Goal", 1},
		{"goal", 1},
		{"GOAL", 1},
		{"", 0},
		{"Saved", 0},
		{"Off T", 0},
		{"goal ", 0}, // exact match after lowering, no trimming
	}
	for _, c := range cases {
		if got := IsGoal(c.outcome); got != c.want {
			t.Errorf("IsGoal(%q) = %d, want %d", c.outcome, got, c.want)
		}
	}
}

func TestIndicators(t *testing.T) {
	if IsHeader("Head") != 1 || IsHeader("Right Foot") != 0 || IsHeader("") != 0 {
		t.Error("IsHeader mismatch")
	}
	if IsPenalty("Penalty") != 1 || IsPenalty("Volley") != 0 || IsPenalty("") != 0 {
		t.Error("IsPenalty mismatch")
	}
}

// TestDerive_DropsMissingCoordinates: records without x or y are dropped and
// counted; surviving records always carry geometry.
func TestDerive_DropsMissingCoordinates(t *testing.T) {
	shots := []model.ShotEvent{
		{MatchID: 1, Player: "A", X: fptr(113), Y: fptr(40), Outcome: "Goal"},
		{MatchID: 1, Player: "B", X: nil, Y: fptr(40)},
		{MatchID: 1, Player: "C", X: fptr(100), Y: nil},
		{MatchID: 1, Player: "D", X: nil, Y: nil},
	}

	records, dropped := Derive(shots)
	if dropped != 3 {
		t.Errorf("dropped = %d, want 3", dropped)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.Player != "A" || r.IsGoal != 1 {
		t.Errorf("surviving record = %+v, want player A with IsGoal=1", r)
	}
	if math.Abs(r.Distance-7.0) > eps {
		t.Errorf("Distance = %v, want 7.0", r.Distance)
	}
}

// TestDerive_Idempotent: re-deriving unchanged input produces an equivalent
// dataset, row for row.
func TestDerive_Idempotent(t *testing.T) {
	shots := []model.ShotEvent{
		{MatchID: 1, Player: "A", X: fptr(113), Y: fptr(40), Outcome: "Goal"},
		{MatchID: 1, Player: "B", X: nil, Y: nil},
		{MatchID: 2, Player: "C", X: fptr(97.3), Y: fptr(12.8), BodyPart: "Head"},
	}

	first, droppedFirst := Derive(shots)
	second, droppedSecond := Derive(shots)

	if droppedFirst != droppedSecond || len(first) != len(second) {
		t.Fatalf("runs differ: %d/%d records, %d/%d dropped",
			len(first), len(second), droppedFirst, droppedSecond)
	}
	for i := range first {
		if first[i].Distance != second[i].Distance || first[i].Angle != second[i].Angle ||
			first[i].IsGoal != second[i].IsGoal || first[i].IsHeader != second[i].IsHeader {
			t.Errorf("row %d differs between runs", i)
		}
	}
}

// TestDerive_Indicators: label and indicator derivation flow through from
// the source strings.
func TestDerive_Indicators(t *testing.T) {
	shots := []model.ShotEvent{
		{X: fptr(108), Y: fptr(40), Outcome: "Saved", BodyPart: "Head", Technique: "Penalty"},
	}
	records, dropped := Derive(shots)
	if dropped != 0 || len(records) != 1 {
		t.Fatalf("got %d records, %d dropped", len(records), dropped)
	}
	r := records[0]
	if r.IsGoal != 0 || r.IsHeader != 1 || r.IsPenalty != 1 {
		t.Errorf("indicators = goal:%d header:%d penalty:%d, want 0/1/1",
			r.IsGoal, r.IsHeader, r.IsPenalty)
	}
}

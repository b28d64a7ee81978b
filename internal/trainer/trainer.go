// Package trainer fits the xG probability model and reports its
// validation-set quality.
package trainer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/pable/go-xg-metrics/internal/model"
)

const (
	// DefaultSeed makes the train/validation split reproducible across runs
	// with identical input.
	DefaultSeed = 42
	// DefaultValFraction is the share of rows held out for validation.
	DefaultValFraction = 0.2

	fitIterations   = 10000
	fitLearningRate = 0.01

	// probEps guards the log in log-loss against a probability of exactly 0 or 1.
	probEps = 1e-15
)

// ErrSingleClassValidation is returned when the validation split contains
// only one class, leaving ROC-AUC (and an honest log-loss) undefined. The
// training stage must fail rather than substitute a placeholder metric.
var ErrSingleClassValidation = errors.New("validation split contains a single class")

// Options configures a training run.
type Options struct {
	Seed        int64
	ValFraction float64
}

// DefaultOptions returns the standard 80/20 split with the fixed seed.
func DefaultOptions() Options {
	return Options{Seed: DefaultSeed, ValFraction: DefaultValFraction}
}

// Train fits a logistic model on a stratified training partition of records
// and evaluates it on the held-out partition. Metrics are computed on the
// validation rows only.
func Train(records []model.FeatureRecord, opts Options) (*model.LinearModel, *model.MetricReport, error) {
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no feature records to train on")
	}

	train, val := Split(records, opts.ValFraction, opts.Seed)
	if len(train) == 0 || len(val) == 0 {
		return nil, nil, fmt.Errorf("degenerate split: %d train / %d validation rows", len(train), len(val))
	}

	m := Fit(train)

	labels := make([]int, len(val))
	probs := make([]float64, len(val))
	for i := range val {
		labels[i] = val[i].IsGoal
		probs[i] = m.Predict(val[i].FeatureVector())
	}

	auc, err := rocAUC(labels, probs)
	if err != nil {
		return nil, nil, fmt.Errorf("evaluate validation split: %w", err)
	}

	goals := 0
	for i := range records {
		goals += records[i].IsGoal
	}

	report := &model.MetricReport{
		RowsTotal:    len(records),
		RowsTrain:    len(train),
		RowsVal:      len(val),
		GoalRate:     float64(goals) / float64(len(records)),
		LogLoss:      logLoss(labels, probs),
		BrierScore:   brierScore(labels, probs),
		ROCAUC:       auc,
		Features:     m.Features,
		Coefficients: m.Coefficients,
		Intercept:    m.Intercept,
	}
	return m, report, nil
}

// Split partitions records into train and validation sets, stratified by
// label so the goal rate is preserved in both. The same seed and input
// always produce the same partition.
func Split(records []model.FeatureRecord, valFraction float64, seed int64) (train, val []model.FeatureRecord) {
	var pos, neg []int
	for i := range records {
		if records[i].IsGoal == 1 {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pos), func(i, j int) { pos[i], pos[j] = pos[j], pos[i] })
	rng.Shuffle(len(neg), func(i, j int) { neg[i], neg[j] = neg[j], neg[i] })

	valPos := int(math.Round(float64(len(pos)) * valFraction))
	valNeg := int(math.Round(float64(len(neg)) * valFraction))

	valIdx := append(append([]int{}, pos[:valPos]...), neg[:valNeg]...)
	trainIdx := append(append([]int{}, pos[valPos:]...), neg[valNeg:]...)
	sort.Ints(valIdx)
	sort.Ints(trainIdx)

	for _, i := range trainIdx {
		train = append(train, records[i])
	}
	for _, i := range valIdx {
		val = append(val, records[i])
	}
	return train, val
}

// Fit trains a logistic regression on the records via full-batch gradient
// descent on the log-loss. Features are used as-is: no scaling, no
// interaction terms.
func Fit(records []model.FeatureRecord) *model.LinearModel {
	names := model.FeatureNames()

	// x rows carry a leading 1 for the intercept.
	xs := make([][]float64, len(records))
	ys := make([]float64, len(records))
	for i := range records {
		fv := records[i].FeatureVector()
		row := make([]float64, len(names)+1)
		row[0] = 1.0
		for j, name := range names {
			row[j+1] = fv[name]
		}
		xs[i] = row
		ys[i] = float64(records[i].IsGoal)
	}

	w := make([]float64, len(names)+1)
	grad := make([]float64, len(w))
	n := float64(len(records))

	for iter := 0; iter < fitIterations; iter++ {
		for k := range grad {
			grad[k] = 0
		}
		for i, row := range xs {
			z := 0.0
			for k := range w {
				z += w[k] * row[k]
			}
			// d/dw of -[y*log(p)+(1-y)*log(1-p)] is (p-y)*x.
			diff := model.Sigmoid(z) - ys[i]
			for k := range w {
				grad[k] += diff * row[k]
			}
		}
		for k := range w {
			w[k] -= fitLearningRate * grad[k] / n
		}
	}

	coeffs := make(map[string]float64, len(names))
	for j, name := range names {
		coeffs[name] = w[j+1]
	}
	return &model.LinearModel{
		Features:     names,
		Coefficients: coeffs,
		Intercept:    w[0],
	}
}

// logLoss is the mean negative log-likelihood of the labels under the
// predicted probabilities.
func logLoss(labels []int, probs []float64) float64 {
	sum := 0.0
	for i, y := range labels {
		p := math.Max(probEps, math.Min(1-probEps, probs[i]))
		if y == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(len(labels))
}

// brierScore is the mean squared error between predicted probability and the
// 0/1 label.
func brierScore(labels []int, probs []float64) float64 {
	sum := 0.0
	for i, y := range labels {
		d := probs[i] - float64(y)
		sum += d * d
	}
	return sum / float64(len(labels))
}

// rocAUC is the probability that a random positive is ranked above a random
// negative, computed from tie-averaged ranks (Mann-Whitney U). A single-class
// label set makes the statistic undefined.
func rocAUC(labels []int, probs []float64) (float64, error) {
	nPos, nNeg := 0, 0
	for _, y := range labels {
		if y == 1 {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0, ErrSingleClassValidation
	}

	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return probs[idx[a]] < probs[idx[b]] })

	// Tie-averaged ranks, 1-based.
	ranks := make([]float64, len(probs))
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && probs[idx[j]] == probs[idx[i]] {
			j++
		}
		avgRank := float64(i+j+1) / 2.0 // mean of ranks i+1 .. j
		for k := i; k < j; k++ {
			ranks[idx[k]] = avgRank
		}
		i = j
	}

	sumRanksPos := 0.0
	for i, y := range labels {
		if y == 1 {
			sumRanksPos += ranks[i]
		}
	}
	u := sumRanksPos - float64(nPos)*float64(nPos+1)/2.0
	return u / (float64(nPos) * float64(nNeg)), nil
}

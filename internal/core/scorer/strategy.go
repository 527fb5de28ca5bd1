package scorer

import "math"

// Inputs are the signals a scoring strategy blends. ROAS and DailyProfit
// come from the candidate's cost/revenue projection; VolumeConfidence is
// a 0-1 measure of how much search volume backs the estimate.
type Inputs struct {
	ROAS             float64
	DailyProfit      float64
	VolumeConfidence float64
}

// Strategy converts the blended signals into a bounded 0-100 score. The
// exact weighting is policy, not contract: implementations must be
// monotonic (higher ROAS and higher profit never lower the score) but
// are otherwise free to tune the blend.
type Strategy interface {
	Score(in Inputs) float64
}

// Weighted is the default strategy. Each signal is squashed into 0-1
// with a saturating curve, then combined with fixed weights. The scales
// set the signal value at which the curve reaches its halfway point.
//
// Weights: ROAS 45%, absolute daily profit 35%, volume confidence 20%.
// ROAS saturates around the 3x target; profit around 10/day.
type Weighted struct {
	ROASWeight   float64
	ProfitWeight float64
	VolumeWeight float64
	ROASScale    float64
	ProfitScale  float64
}

// DefaultStrategy returns the production weighting.
func DefaultStrategy() Weighted {
	return Weighted{
		ROASWeight:   0.45,
		ProfitWeight: 0.35,
		VolumeWeight: 0.20,
		ROASScale:    3.0,
		ProfitScale:  10.0,
	}
}

// Score implements Strategy.
func (w Weighted) Score(in Inputs) float64 {
	roas := saturate(in.ROAS, w.ROASScale)
	profit := saturate(in.DailyProfit, w.ProfitScale)
	vol := math.Max(0, math.Min(1, in.VolumeConfidence))

	score := 100 * (w.ROASWeight*roas + w.ProfitWeight*profit + w.VolumeWeight*vol)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// saturate maps x >= 0 onto [0,1) with value 0.5 at x = scale. Negative
// inputs map to 0.
func saturate(x, scale float64) float64 {
	if x <= 0 || scale <= 0 {
		return 0
	}
	return x / (x + scale)
}

// volumeConfidence maps monthly search volume onto 0-1 on a log scale;
// 10k/month and above counts as full confidence.
func volumeConfidence(volume int64) float64 {
	if volume <= 0 {
		return 0
	}
	c := math.Log10(float64(volume)+1) / 4
	if c > 1 {
		return 1
	}
	return c
}

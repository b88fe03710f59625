package model

import (
	"math"
	"sort"
)

// GlassPlasticMargin is the probability gap under which a Glass prediction
// with Plastic as runner-up is reported as Plastic. Hand-tuned, raised from 0.15.
const GlassPlasticMargin = 0.25

// Softmax converts logits into a probability distribution.
func Softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}

	maxLogit := math.Inf(-1)
	for _, v := range logits {
		maxLogit = math.Max(maxLogit, float64(v))
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(float64(v) - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// TopK returns the k most probable classes, highest first. Equal
// probabilities keep index order.
func TopK(probs []float64, k int) []Ranked {
	ranked := make([]Ranked, len(probs))
	for i, p := range probs {
		label, _ := Label(i)
		ranked[i] = Ranked{Index: i, Label: label, Prob: p}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Prob > ranked[j].Prob
	})
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// ApplyGlassPlasticRule picks the reported class from the two best. It
// returns second, true when first is Glass, second is Plastic and the gap is
// below GlassPlasticMargin.
func ApplyGlassPlasticRule(first, second Ranked) (Ranked, bool) {
	if first.Label == LabelGlass && second.Label == LabelPlastic &&
		first.Prob-second.Prob < GlassPlasticMargin {
		return second, true
	}
	return first, false
}

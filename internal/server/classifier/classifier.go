// Package classifier defines the emotion classification capability the
// journal engine consumes, and the normalization policy that maps the
// capability's native labels onto the canonical emotion set.
package classifier

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

// Prediction is the raw output of a classification capability: the native
// label the model chose plus its per-label probability distribution.
type Prediction struct {
	Label  string
	Scores map[string]float64
}

// Classifier maps free text to a native-label prediction. Implementations
// are expected to handle truncation of over-long input themselves.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Prediction, error)
}

// Normalize maps a native model label onto the canonical emotion set by
// case-insensitive prefix: "pos*" → positive, "neu*" → neutral, anything
// else → negative. The catch-all is deliberate: an unrecognized or
// malformed label degrades to negative instead of failing the submission.
func Normalize(label string) models.Emotion {
	l := strings.ToLower(label)
	switch {
	case strings.HasPrefix(l, "pos"):
		return models.EmotionPositive
	case strings.HasPrefix(l, "neu"):
		return models.EmotionNeutral
	default:
		return models.EmotionNegative
	}
}

// Confidence returns the probability mass assigned to the argmax native
// label. It is not re-normalized over the canonical buckets. Falls back
// to the distribution maximum when the chosen label is absent from it.
func (p *Prediction) Confidence() float64 {
	if s, ok := p.Scores[p.Label]; ok {
		return s
	}
	var max float64
	for _, s := range p.Scores {
		if s > max {
			max = s
		}
	}
	return max
}

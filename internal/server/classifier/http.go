package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/sethvargo/go-retry"
)

// HTTPClassifier calls a hosted text-classification inference endpoint
// (HuggingFace-inference-style JSON contract: {"inputs": text} in, a list
// of {label, score} pairs out).
//
// Hosted models answer 503 while the model is loading; those responses
// are retried with exponential backoff before giving up.
type HTTPClassifier struct {
	endpoint   string
	token      string
	client     *http.Client
	logger     logging.Logger
	maxRetries uint64
}

func NewHTTPClassifier(endpoint, token string, timeout time.Duration, logger logging.Logger) *HTTPClassifier {
	return &HTTPClassifier{
		endpoint:   endpoint,
		token:      token,
		client:     &http.Client{Timeout: timeout},
		logger:     logger.With("module", "classifier"),
		maxRetries: 3,
	}
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify sends the text verbatim; truncation is the remote model's
// concern. Returns common.ErrClassifierUnavailable (wrapped) when the
// endpoint keeps failing after retries.
func (c *HTTPClassifier) Classify(ctx context.Context, text string) (*Prediction, error) {

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, err
	}

	var scores []labelScore

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(500*time.Millisecond))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		switch {
		case resp.StatusCode == http.StatusServiceUnavailable:
			// Model still warming up.
			c.logger.Warn(ctx, "classifier warming up, retrying")
			return retry.RetryableError(fmt.Errorf("%w: model loading", common.ErrClassifierUnavailable))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("%w: status %d", common.ErrClassifierUnavailable, resp.StatusCode)
		}

		scores, err = decodeScores(body)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrClassifierUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toPrediction(scores)
}

// decodeScores accepts both response shapes seen in the wild: a flat list
// of label/score pairs, or that list wrapped in an outer batch array.
func decodeScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}
	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, fmt.Errorf("unexpected response body")
}

func toPrediction(scores []labelScore) (*Prediction, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: empty distribution", common.ErrClassifierUnavailable)
	}
	p := &Prediction{Scores: make(map[string]float64, len(scores))}
	best := scores[0]
	for _, ls := range scores {
		p.Scores[ls.Label] = ls.Score
		if ls.Score > best.Score {
			best = ls
		}
	}
	p.Label = best.Label
	return p, nil
}

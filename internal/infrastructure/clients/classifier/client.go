package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/pkg/config"
)

// HTTPClient calls the disease classification model service. The service
// takes canonical symptom keywords plus user context and returns ranked
// disease candidates with raw probabilities.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a classifier client from configuration.
func NewHTTPClient(cfg *config.ClassifierConfig) (*HTTPClient, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("classifier base URL is required")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type predictResponse struct {
	Predictions []candidatePayload `json:"predictions"`
}

type candidatePayload struct {
	CoarseLabel string  `json:"coarse_label"`
	FineLabel   string  `json:"fine_label"`
	RiskScore   float64 `json:"risk_score"`
	RiskLevel   string  `json:"risk_level,omitempty"`
	Guideline   string  `json:"guideline,omitempty"`
}

// Predict sends the classification request and returns the candidates in
// model order (highest probability first).
func (c *HTTPClient) Predict(ctx context.Context, req *entities.ClassificationRequest) ([]entities.PredictionCandidate, error) {
	if req == nil {
		return nil, errors.New("classification request is required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var envelope predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	candidates := make([]entities.PredictionCandidate, 0, len(envelope.Predictions))
	for _, p := range envelope.Predictions {
		candidates = append(candidates, entities.PredictionCandidate{
			CoarseLabel: p.CoarseLabel,
			FineLabel:   p.FineLabel,
			RiskScore:   p.RiskScore,
			RiskLevel:   entities.RiskLevel(p.RiskLevel),
			Guideline:   p.Guideline,
		})
	}

	return candidates, nil
}

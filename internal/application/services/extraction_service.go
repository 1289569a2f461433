package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/providers"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/observability"
)

const extractionAttempts = 3

var errInvalidExtractionResponse = errors.New("completion response contains no JSON array")

const extractionSystemPrompt = `You are a medical symptom extraction assistant. Extract every symptom the user describes from the text below. Return ONLY a valid JSON array with this schema:
[
  {"symptom": string (short English symptom phrase), "time": string or null}
]
The "time" field must be exactly one of "morning", "afternoon", "evening", "night", "persistent", or null when the text gives no time. Use "persistent" for chronic or long-standing symptoms. Do not infer symptoms that are not stated. Do not add any text outside the JSON array.

Text: `

// ExtractionService turns free-text symptom descriptions into structured
// symptom mentions by querying the text-completion service. The model is
// queried a fixed number of times and the attempts are merged downstream;
// repeated sampling catches symptoms a single completion misses.
type ExtractionService struct {
	provider       providers.TextCompletionProvider
	attemptTimeout time.Duration
}

// NewExtractionService creates a new extraction service. attemptTimeout
// bounds each individual completion call.
func NewExtractionService(provider providers.TextCompletionProvider, attemptTimeout time.Duration) *ExtractionService {
	if attemptTimeout <= 0 {
		attemptTimeout = 10 * time.Second
	}
	return &ExtractionService{
		provider:       provider,
		attemptTimeout: attemptTimeout,
	}
}

// Extract runs the fixed number of extraction attempts sequentially and
// returns one slice of mentions per attempt. Failed or unparseable attempts
// are logged and contribute an empty slice; Extract itself only fails when
// the context is cancelled. All attempts failing is not an error: the caller
// sees an empty result and reports it as a validation problem.
func (s *ExtractionService) Extract(ctx context.Context, text string) ([][]entities.ExtractedSymptom, error) {
	logger := observability.LoggerFromContext(ctx)
	prompt := extractionSystemPrompt + text

	attempts := make([][]entities.ExtractedSymptom, 0, extractionAttempts)
	for i := 0; i < extractionAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mentions, err := s.extractOnce(ctx, prompt)
		if err != nil {
			logger.Warn().
				Err(err).
				Int("attempt", i+1).
				Msg("symptom extraction attempt failed")
			attempts = append(attempts, nil)
			continue
		}
		attempts = append(attempts, mentions)
	}

	return attempts, nil
}

func (s *ExtractionService) extractOnce(ctx context.Context, prompt string) ([]entities.ExtractedSymptom, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	raw, err := s.provider.Complete(attemptCtx, prompt)
	if err != nil {
		return nil, err
	}

	return parseExtractionResponse(raw)
}

type extractionPayload struct {
	Symptom string  `json:"symptom"`
	Time    *string `json:"time"`
}

// parseExtractionResponse parses a model response defensively: code fences
// are stripped and only the outermost JSON array is considered, since models
// wrap output in prose despite instructions.
func parseExtractionResponse(raw string) ([]entities.ExtractedSymptom, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end <= start {
		return nil, errInvalidExtractionResponse
	}
	cleaned = cleaned[start : end+1]

	var payload []extractionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, err
	}

	mentions := make([]entities.ExtractedSymptom, 0, len(payload))
	for _, p := range payload {
		symptom := strings.TrimSpace(p.Symptom)
		if symptom == "" {
			continue
		}
		var timeCtx *entities.TimeContext
		if p.Time != nil {
			timeCtx = entities.ParseTimeContext(*p.Time)
		}
		mentions = append(mentions, entities.ExtractedSymptom{
			Symptom: symptom,
			Time:    timeCtx,
		})
	}

	return mentions, nil
}

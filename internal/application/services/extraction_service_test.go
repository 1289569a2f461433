package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/application/services"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
)

type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestExtractionService_Extract(t *testing.T) {
	t.Run("runs three attempts and returns each attempt separately", func(t *testing.T) {
		provider := new(MockCompletionProvider)
		provider.On("Complete", mock.Anything, mock.Anything).
			Return(`[{"symptom": "cough", "time": "night"}, {"symptom": "fever", "time": null}]`, nil).
			Times(3)

		service := services.NewExtractionService(provider, time.Second)
		attempts, err := service.Extract(context.Background(), "I cough at night and feel feverish")

		assert.NoError(t, err)
		assert.Len(t, attempts, 3)
		for _, attempt := range attempts {
			assert.Len(t, attempt, 2)
			assert.Equal(t, "cough", attempt[0].Symptom)
			assert.NotNil(t, attempt[0].Time)
			assert.Equal(t, entities.TimeNight, *attempt[0].Time)
			assert.Equal(t, "fever", attempt[1].Symptom)
			assert.Nil(t, attempt[1].Time)
		}
		provider.AssertExpectations(t)
	})

	t.Run("a failed attempt is skipped, remaining attempts still run", func(t *testing.T) {
		provider := new(MockCompletionProvider)
		provider.On("Complete", mock.Anything, mock.Anything).
			Return("", errors.New("connection refused")).Once()
		provider.On("Complete", mock.Anything, mock.Anything).
			Return(`[{"symptom": "headache", "time": null}]`, nil).Twice()

		service := services.NewExtractionService(provider, time.Second)
		attempts, err := service.Extract(context.Background(), "my head hurts")

		assert.NoError(t, err)
		assert.Len(t, attempts, 3)
		assert.Empty(t, attempts[0])
		assert.Len(t, attempts[1], 1)
		assert.Len(t, attempts[2], 1)
		provider.AssertExpectations(t)
	})

	t.Run("all attempts failing yields empty results without error", func(t *testing.T) {
		provider := new(MockCompletionProvider)
		provider.On("Complete", mock.Anything, mock.Anything).
			Return("", errors.New("model overloaded")).
			Times(3)

		service := services.NewExtractionService(provider, time.Second)
		attempts, err := service.Extract(context.Background(), "I feel unwell")

		assert.NoError(t, err)
		assert.Len(t, attempts, 3)
		for _, attempt := range attempts {
			assert.Empty(t, attempt)
		}
		provider.AssertExpectations(t)
	})

	t.Run("unparseable responses count as failed attempts", func(t *testing.T) {
		provider := new(MockCompletionProvider)
		provider.On("Complete", mock.Anything, mock.Anything).
			Return("I could not find any symptoms in the text.", nil).
			Times(3)

		service := services.NewExtractionService(provider, time.Second)
		attempts, err := service.Extract(context.Background(), "hello")

		assert.NoError(t, err)
		assert.Len(t, attempts, 3)
		for _, attempt := range attempts {
			assert.Empty(t, attempt)
		}
	})

	t.Run("strips code fences and surrounding prose", func(t *testing.T) {
		provider := new(MockCompletionProvider)
		provider.On("Complete", mock.Anything, mock.Anything).
			Return("```json\n[{\"symptom\": \"itchy skin\", \"time\": \"persistent\"}]\n```", nil).
			Times(3)

		service := services.NewExtractionService(provider, time.Second)
		attempts, err := service.Extract(context.Background(), "my skin has been itchy for months")

		assert.NoError(t, err)
		assert.Len(t, attempts[0], 1)
		assert.Equal(t, "itchy skin", attempts[0][0].Symptom)
		assert.Equal(t, entities.TimePersistent, *attempts[0][0].Time)
	})

	t.Run("unknown time values are treated as absent", func(t *testing.T) {
		provider := new(MockCompletionProvider)
		provider.On("Complete", mock.Anything, mock.Anything).
			Return(`[{"symptom": "nausea", "time": "sometimes"}]`, nil).
			Times(3)

		service := services.NewExtractionService(provider, time.Second)
		attempts, err := service.Extract(context.Background(), "I feel nauseous sometimes")

		assert.NoError(t, err)
		assert.Len(t, attempts[0], 1)
		assert.Nil(t, attempts[0][0].Time)
	})

	t.Run("cancelled context aborts extraction", func(t *testing.T) {
		provider := new(MockCompletionProvider)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		service := services.NewExtractionService(provider, time.Second)
		_, err := service.Extract(ctx, "anything")

		assert.Error(t, err)
		provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})
}

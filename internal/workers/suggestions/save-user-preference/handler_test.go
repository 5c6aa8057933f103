// internal/workers/suggestions/save-user-preference/handler_test.go
package saveuserpreference

import (
	"context"
	"testing"
	"time"

	apperrors "trip-suggestions/internal/common/errors"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	saved []models.DestinationPreference
}

func (f *fakeSaver) SaveUserPreference(_ context.Context, p models.DestinationPreference) {
	f.saved = append(f.saved, p)
}

func createTestHandler(t *testing.T, s Saver) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, s, logger.NewTestLogger(t))
}

func createTestInput() *Input {
	return &Input{
		UserID:          "user-1",
		DestinationID:   "seed-kyoto",
		DestinationName: "Kyoto",
		Country:         "Japan",
		Rating:          5,
		TripType:        "Cultural",
		BudgetLevel:     "HIGH",
		DurationDays:    6,
		LikedPlaceIDs:   []string{"fushimi-inari"},
	}
}

func TestExecute_SavesNormalizedPreference(t *testing.T) {
	saver := &fakeSaver{}
	h := createTestHandler(t, saver)

	out, err := h.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.True(t, out.Accepted)
	require.Len(t, saver.saved, 1)
	got := saver.saved[0]
	assert.Equal(t, models.TripTypeCultural, got.TripType)
	assert.Equal(t, models.BudgetHigh, got.BudgetLevel)
	assert.Equal(t, "Japan", got.Country)
	assert.Equal(t, []string{"fushimi-inari"}, got.LikedPlaceIDs)
	assert.Empty(t, got.ID)
}

func TestExecute_UnknownEnumIsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"trip type", func(in *Input) { in.TripType = "cruise" }},
		{"budget", func(in *Input) { in.BudgetLevel = "luxury" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &fakeSaver{}
			h := createTestHandler(t, saver)
			input := createTestInput()
			tt.mutate(input)

			_, err := h.Execute(context.Background(), input)

			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
			assert.Empty(t, saver.saved)
		})
	}
}

func TestParse(t *testing.T) {
	h := createTestHandler(t, &fakeSaver{})

	input, err := h.Parse(`{"userId":"u","destinationId":"d","rating":4,"tripType":"beach","budgetLevel":"low","durationDays":3}`)
	require.NoError(t, err)
	assert.Equal(t, 4, input.Rating)

	tests := []struct {
		name      string
		variables string
	}{
		{"rating too high", `{"userId":"u","destinationId":"d","rating":6,"tripType":"beach","budgetLevel":"low","durationDays":3}`},
		{"zero duration", `{"userId":"u","destinationId":"d","rating":4,"tripType":"beach","budgetLevel":"low","durationDays":0}`},
		{"missing trip type", `{"userId":"u","destinationId":"d","rating":4,"budgetLevel":"low","durationDays":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Parse(tt.variables)
			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
		})
	}
}

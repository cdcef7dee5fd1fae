package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestDrawComplete(t *testing.T) {
	draw := &Draw{ID: 1, Name: "PT-Rio 19h", Status: DrawStatusClosed}
	results := []PremioResult{{AnimalGroup: intp(2), Milhar: strp("1407")}}
	now := time.Now().UTC()

	require.NoError(t, draw.Complete(results, now))
	assert.Equal(t, DrawStatusCompleted, draw.Status)
	assert.Equal(t, results, draw.Results)
	require.NotNil(t, draw.CompletedAt)

	// Completion is terminal.
	assert.ErrorIs(t, draw.Complete(results, now), ErrDrawAlreadySettled)
}

func TestValidateResults(t *testing.T) {
	tests := []struct {
		name    string
		results []PremioResult
		wantErr bool
	}{
		{"empty", nil, true},
		{"animal only", []PremioResult{{AnimalGroup: intp(4)}}, false},
		{"milhar only", []PremioResult{{Milhar: strp("1407")}}, false},
		{"short milhar accepted", []PremioResult{{Milhar: strp("81")}}, false},
		{"neither animal nor milhar", []PremioResult{{}}, true},
		{"group out of range", []PremioResult{{AnimalGroup: intp(26)}}, true},
		{"milhar too long", []PremioResult{{Milhar: strp("51407")}}, true},
		{"milhar non-digit", []PremioResult{{Milhar: strp("14a7")}}, true},
		{"six premios", []PremioResult{
			{AnimalGroup: intp(1)}, {AnimalGroup: intp(2)}, {AnimalGroup: intp(3)},
			{AnimalGroup: intp(4)}, {AnimalGroup: intp(5)}, {AnimalGroup: intp(6)},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResults(tt.results)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMilhar(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1407", "1407"},
		{"81", "0081"},
		{"7", "0007"},
		{"0000", "0000"},
		{"51407", "1407"}, // overflow keeps the last four digits
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMilhar(tt.input), "input %q", tt.input)
	}
}

func TestDezena(t *testing.T) {
	assert.Equal(t, "07", Dezena("1407"))
	assert.Equal(t, "00", Dezena("3400"))
	assert.Equal(t, "81", Dezena("81"))
	assert.Equal(t, "07", Dezena("7"))
}

func TestCentena(t *testing.T) {
	assert.Equal(t, "407", Centena("1407"))
	assert.Equal(t, "081", Centena("81"))
	assert.Equal(t, "007", Centena("7"))
}

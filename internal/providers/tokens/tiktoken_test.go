package tokens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprox_Count(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short", "hi", 1},
		{"sentence", "What is the return policy?", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Approx{}.Count(tt.text))
		})
	}
}

func TestNewTiktoken_UnknownEncoding(t *testing.T) {
	_, err := NewTiktoken("no_such_encoding")
	require.Error(t, err)
}

func TestNewCounter_FallsBack(t *testing.T) {
	c := NewCounter(context.Background(), "no_such_encoding")
	assert.IsType(t, Approx{}, c)
}

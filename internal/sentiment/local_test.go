package sentiment

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestMapToScale(t *testing.T) {
	cases := []struct {
		label      string
		confidence float64
		want       float64
	}{
		{LabelPositive, 0.95, 4.5},
		{LabelPositive, 0.9, 4.5},
		{LabelPositive, 0.8, 3.0},
		{LabelPositive, 0.7, 3.0},
		{LabelPositive, 0.6, 1.5},
		{LabelNegative, 0.95, -4.5},
		{LabelNegative, 0.75, -3.0},
		{LabelNegative, 0.5, -1.5},
		{LabelNeutral, 0.99, 0.0},
		{"SOMETHING_ELSE", 0.99, 0.0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, mapToScale(tc.label, tc.confidence))
	}
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{0.0, 0.0})
	assert.Equal(t, probs[0], probs[1])

	probs = softmax([]float32{-1.0, 3.0})
	assert.Equal(t, true, probs[1] > probs[0])

	var sum float32
	for _, p := range probs {
		sum += p
	}
	assert.Equal(t, true, sum > 0.999 && sum < 1.001)
}

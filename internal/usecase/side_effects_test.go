package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideEffects_RunsAllInOrder(t *testing.T) {
	var order []string
	effects := NewSideEffects()
	effects.Add(StageMirroring, "a", func(context.Context) error {
		order = append(order, "a")
		return errors.New("a failed")
	})
	effects.Skip(StageNotifying, "b")
	effects.Add(StageNotifying, "c", func(context.Context) error {
		order = append(order, "c")
		return nil
	})

	results := effects.Run(context.Background())

	assert.Equal(t, []string{"a", "c"}, order)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Name)
	assert.EqualError(t, results[0].Err, "a failed")
	assert.Equal(t, "c", results[1].Name)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "b", results[2].Name)
	assert.True(t, results[2].Skipped)
}

package slotalg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/logbook-engine/internal/slotalg"
)

func TestMinutesToSlot(t *testing.T) {
	slot, err := slotalg.MinutesToSlot(90, 30)
	require.NoError(t, err)
	assert.Equal(t, 3, slot)
}

func TestMinutesToSlotNotAligned(t *testing.T) {
	_, err := slotalg.MinutesToSlot(100, 30)
	require.Error(t, err)
	var alignErr *slotalg.ErrNotSlotAligned
	assert.ErrorAs(t, err, &alignErr)
}

func TestSlotsForAssignment(t *testing.T) {
	slots, err := slotalg.SlotsForAssignment(540, 600, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, slots)
}

func TestSlotsForAssignmentMisaligned(t *testing.T) {
	_, err := slotalg.SlotsForAssignment(540, 601, 30)
	assert.Error(t, err)
}

func TestSnapHalfHourOK(t *testing.T) {
	assert.Equal(t, 540, slotalg.Snap(541, slotalg.ModeHalfHourOK, 30))
	assert.Equal(t, 570, slotalg.Snap(556, slotalg.ModeHalfHourOK, 30))
}

func TestSnapHourOnly(t *testing.T) {
	assert.Equal(t, 540, slotalg.Snap(520, slotalg.ModeHourOnly, 30))
	assert.Equal(t, 600, slotalg.Snap(561, slotalg.ModeHourOnly, 30))
}

func TestIsAligned(t *testing.T) {
	assert.True(t, slotalg.IsAligned(90, 30))
	assert.False(t, slotalg.IsAligned(91, 30))
}

package segmentation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/logbook-engine/internal/segmentation"
)

func TestSegmentsWhollyInside(t *testing.T) {
	segs, err := segmentation.Segments(480, 720, 480, 840)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, segmentation.TagFlex, segs[0].Tag)
	assert.Equal(t, 480, segs[0].StartMin)
	assert.Equal(t, 720, segs[0].EndMin)
}

func TestSegmentsStraddlingOpen(t *testing.T) {
	// Shift starts before store opens, ends inside store hours.
	segs, err := segmentation.Segments(420, 600, 480, 840)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, segmentation.TagFixed, segs[0].Tag)
	assert.Equal(t, 420, segs[0].StartMin)
	assert.Equal(t, 480, segs[0].EndMin)
	assert.Equal(t, segmentation.TagFlex, segs[1].Tag)
	assert.Equal(t, 480, segs[1].StartMin)
	assert.Equal(t, 600, segs[1].EndMin)
}

func TestSegmentsWhollyOutside(t *testing.T) {
	segs, err := segmentation.Segments(0, 100, 480, 840)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, segmentation.TagFixed, segs[0].Tag)

	start, end, ok := segmentation.FlexWindow(segs)
	assert.False(t, ok)
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestSegmentsStraddlingBoth(t *testing.T) {
	segs, err := segmentation.Segments(420, 900, 480, 840)
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, segmentation.TagFixed, segs[0].Tag)
	assert.Equal(t, segmentation.TagFlex, segs[1].Tag)
	assert.Equal(t, segmentation.TagFixed, segs[2].Tag)

	start, end, ok := segmentation.FlexWindow(segs)
	require.True(t, ok)
	assert.Equal(t, 480, start)
	assert.Equal(t, 840, end)
}

func TestSegmentsInvalidRange(t *testing.T) {
	_, err := segmentation.Segments(600, 600, 480, 840)
	assert.Error(t, err)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLayer(t *testing.T, minVal, maxVal, vp float64) Layer {
	t.Helper()
	interval, err := NewInterval(minVal, maxVal)
	require.NoError(t, err)
	layer, err := NewLayer(interval, vp)
	require.NoError(t, err)
	return layer
}

func TestNewLayer_RejectsNonPositiveVelocity(t *testing.T) {
	interval, err := NewInterval(-90, -80)
	require.NoError(t, err)

	_, err = NewLayer(interval, 0)
	assert.ErrorIs(t, err, ErrInvalidVelocity)

	_, err = NewLayer(interval, -1500)
	assert.ErrorIs(t, err, ErrInvalidVelocity)
}

func TestLayer_Derived(t *testing.T) {
	layer := mustLayer(t, -90, -80, 4)

	assert.Equal(t, 10.0, layer.Thickness())
	assert.Equal(t, -85.0, layer.MiddleAltitude())
	assert.Equal(t, 2.5, layer.TravelTime())
}

func TestLayer_String(t *testing.T) {
	layer := mustLayer(t, -90, -80, 3)
	assert.Equal(t, "interval=-80/-90 v=3", layer.String())
}

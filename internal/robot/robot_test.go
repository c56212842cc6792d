package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorner(t *testing.T) {
	x, y := Corner(1920, 1080)
	assert.Equal(t, 1919, x)
	assert.Equal(t, 1079, y)

	x, y = Corner(0, 1080)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

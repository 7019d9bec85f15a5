package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSize_Positive(t *testing.T) {
	w, h := GetSize()
	assert.Positive(t, w)
	assert.Positive(t, h)
}

func TestGetWidth_MatchesTerminal(t *testing.T) {
	if IsTerminal() {
		assert.Positive(t, GetWidth())
	} else {
		assert.Zero(t, GetWidth())
	}
}

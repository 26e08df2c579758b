package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingPreviewService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingPreviewService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingPreviewService.Error(), "preview service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}

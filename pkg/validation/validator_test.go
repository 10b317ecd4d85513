package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMobile(t *testing.T) {
	valid := []string{"09121234567", "+989121234567", "00989121234567"}
	for _, s := range valid {
		assert.True(t, isMobile(s), s)
	}
	invalid := []string{"", "0912", "0912-123-4567", "nine-one-two", "+", "091212345678901234"}
	for _, s := range invalid {
		assert.False(t, isMobile(s), s)
	}
}

func TestIsHexObjectID(t *testing.T) {
	assert.True(t, isHexObjectID("507f1f77bcf86cd799439011"))
	assert.False(t, isHexObjectID("507f1f77bcf86cd79943901"))    // short
	assert.False(t, isHexObjectID("507f1f77bcf86cd7994390111")) // long
	assert.False(t, isHexObjectID("507f1f77bcf86cd79943901z"))  // non-hex
}

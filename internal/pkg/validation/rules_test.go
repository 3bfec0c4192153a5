package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidNPM(t *testing.T) {
	assert.True(t, IsValidNPM("20210801001"))
	assert.True(t, IsValidNPM("12345678"))
	assert.False(t, IsValidNPM("1234567"))
	assert.False(t, IsValidNPM("20210801001x"))
	assert.False(t, IsValidNPM(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("budi@kampus.ac.id"))
	assert.False(t, IsValidEmail("budi@kampus"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("rahasia-123"))
	assert.False(t, IsValidPassword("short"))
}

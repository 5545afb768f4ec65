package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("bob@smithhvac.com"))
	assert.True(t, IsValidEmail("owner+test@example.co"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("two@@example.com"))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-03-01"))
	assert.True(t, IsValidDate("2024-12-31"))

	assert.False(t, IsValidDate(""))
	assert.False(t, IsValidDate("03/01/2025"))
	assert.False(t, IsValidDate("2025-3-1"))
	assert.False(t, IsValidDate("2025-03-01T10:00"))
}

func TestIsValidTimeSlot(t *testing.T) {
	assert.True(t, IsValidTimeSlot("10:00"))
	assert.True(t, IsValidTimeSlot("00:00"))
	assert.True(t, IsValidTimeSlot("23:59"))

	assert.False(t, IsValidTimeSlot(""))
	assert.False(t, IsValidTimeSlot("24:00"))
	assert.False(t, IsValidTimeSlot("9:00"))
	assert.False(t, IsValidTimeSlot("10:60"))
	assert.False(t, IsValidTimeSlot("10:00 AM"))
}

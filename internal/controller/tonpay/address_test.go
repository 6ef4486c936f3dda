package tonpay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTonAddress(t *testing.T) {
	valid := []string{
		"0:" + strings.Repeat("a", 46),
		"U" + strings.Repeat("Q", 46),
		"UQAbCdEfGhIjKlMnOpQrStUvWxYz0123456789_-aBcDeF0",
	}
	for _, address := range valid {
		assert.True(t, IsValidTonAddress(address), "expected valid: %s", address)
	}

	invalid := []string{
		"",
		"0:" + strings.Repeat("a", 45),
		"0:" + strings.Repeat("a", 47),
		"U" + strings.Repeat("Q", 45),
		"X" + strings.Repeat("Q", 46),
		"0:" + strings.Repeat("a", 45) + "!",
		strings.Repeat("a", 48),
	}
	for _, address := range invalid {
		assert.False(t, IsValidTonAddress(address), "expected invalid: %s", address)
	}
}

package claimant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskCardNumber(t *testing.T) {
	testCases := []struct {
		name   string
		number string
		want   string
	}{
		{"plain", "4111111111111111", "************1111"},
		{"spaced", "4111 1111 1111 1111", "************1111"},
		{"dashed", "5500-0000-0000-0004", "************0004"},
		{"short", "123", "***"},
		{"empty", "", ""},
		{"no_digits", "n/a", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskCardNumber(tc.number))
		})
	}
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&Claimant{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&Claimant{FirstName: "Ada"}).FullName())
}

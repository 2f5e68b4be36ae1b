package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReferralCode(t *testing.T) {
	valid := []string{"18/52ab3c123", "18/520000000", "18/52zzzz999"}
	for _, code := range valid {
		assert.True(t, referralCodeRe.MatchString(code), code)
	}

	invalid := []string{
		"",
		"18/52",
		"18/52AB3C123", // uppercase not allocated
		"19/52ab3c123",
		"18/52ab3c12",   // short digit run
		"18/52ab3c1234", // long digit run
		"ab3c12318/52",
	}
	for _, code := range invalid {
		assert.False(t, referralCodeRe.MatchString(code), code)
	}
}

func TestSanitizeStruct(t *testing.T) {
	ref := "  18/52ab3c123 "
	req := RegisterRequest{
		FirstName:  "  Ada <script> ",
		LastName:   "Obi",
		ReferredBy: &ref,
	}

	SanitizeStruct(&req)

	assert.Equal(t, "Ada &lt;script&gt;", req.FirstName)
	assert.Equal(t, "Obi", req.LastName)
	assert.Equal(t, "18/52ab3c123", *req.ReferredBy)
}

func TestSanitizeStruct_NonStructIsNoop(t *testing.T) {
	s := "unchanged"
	SanitizeStruct(s)
	SanitizeStruct(&s)
	assert.Equal(t, "unchanged", s)
}

package otp

import (
	"errors"
	"testing"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SixDecimalDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, Length)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "non-digit in %q", code)
		}
	}
}

func TestHashCompare_RoundTrip(t *testing.T) {
	h, err := Hash("000042")
	require.NoError(t, err)
	require.NotEqual(t, "000042", h)

	ok, err := Compare("000042", h)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompare_MismatchIsFalseNotError(t *testing.T) {
	h, err := Hash("123456")
	require.NoError(t, err)

	ok, err := Compare("654321", h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompare_CorruptHashIsError(t *testing.T) {
	ok, err := Compare("123456", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, domain.ErrOTPCompare))
}

func TestHash_Salted(t *testing.T) {
	h1, err := Hash("123456")
	require.NoError(t, err)
	h2, err := Hash("123456")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

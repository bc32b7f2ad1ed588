package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	hash, err := PasswordEncrypt("s3cret!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!pass", hash)
	assert.True(t, PasswordCompare("s3cret!pass", hash))
	assert.False(t, PasswordCompare("wrong", hash))
	assert.False(t, PasswordCompare("s3cret!pass", "not-a-hash"))
}

func TestPanicOnErr(t *testing.T) {
	assert.NotPanics(t, func() { PanicOnErr(nil) })
	assert.Panics(t, func() { PanicOnErr(errors.New("boom")) })
}

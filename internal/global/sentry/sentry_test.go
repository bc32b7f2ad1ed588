package sentry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedErr int32

func (c codedErr) Error() string  { return "coded" }
func (c codedErr) GetCode() int32 { return int32(c) }

func TestShouldReport(t *testing.T) {
	assert.True(t, ShouldReport(codedErr(50001)))
	assert.True(t, ShouldReport(codedErr(50200)))
	assert.False(t, ShouldReport(codedErr(40400)))
	assert.False(t, ShouldReport(codedErr(40003)))
	assert.True(t, ShouldReport(errors.New("plain")))
}

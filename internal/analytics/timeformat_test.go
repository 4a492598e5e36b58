package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vocallq/vocallq/internal/analytics"
)

func TestFormatTimestamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0:00", analytics.FormatTimestamp(0))
	assert.Equal("1:05", analytics.FormatTimestamp(65))
	assert.Equal("9:59", analytics.FormatTimestamp(599))
	assert.Equal("1:01:05", analytics.FormatTimestamp(3665))
	assert.Equal("2:00:00", analytics.FormatTimestamp(7200))

	// fractional offsets truncate to whole seconds
	assert.Equal("1:05", analytics.FormatTimestamp(65.9))
}

func TestFormatDuration(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0m", analytics.FormatDuration(0))
	assert.Equal("0m", analytics.FormatDuration(59))
	assert.Equal("5m", analytics.FormatDuration(300))
	assert.Equal("1h 1m", analytics.FormatDuration(3661))
	assert.Equal("2h 0m", analytics.FormatDuration(7200))
}

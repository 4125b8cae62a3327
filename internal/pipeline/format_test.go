package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 14.29, RoundFloat(14.285714, 2))
	assert.Equal(t, 3.0, RoundFloat(2.5, 0))
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "1,234.50", FormatThousands(1234.5, 2))
	assert.Equal(t, "1,000", FormatThousands(1000, 0))
	assert.Equal(t, "999", FormatThousands(999.4, 0))
	assert.Equal(t, "1,234,567.89", FormatThousands(1234567.891, 2))
	assert.Equal(t, "-12,000", FormatThousands(-12000, 0))
	assert.Equal(t, "0", FormatThousands(-0.2, 0))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1.60", FormatMoney(1.5999999999999999, 2))
	assert.Equal(t, "-$1,500", FormatMoney(-1500, 0))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "14.3%", FormatPercent(0.142857))
	assert.Equal(t, "25.0%", FormatPercent(0.25))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "20", FormatFloat(20))
	assert.Equal(t, "1.2", FormatFloat(1.20))
}

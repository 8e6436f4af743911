package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapConstraintUsesTimestamptzRange(t *testing.T) {
	// the columns migrate as timestamptz; tsrange(timestamptz, timestamptz)
	// has no overload and the ALTER TABLE would fail
	assert.Contains(t, overlapConstraintDDL, "tstzrange(start_time, end_time)")
	assert.NotContains(t, overlapConstraintDDL, " tsrange(")

	assert.Contains(t, overlapConstraintDDL, "EXCLUDE USING gist")
	assert.Contains(t, overlapConstraintDDL, "barber_id WITH =")
	assert.True(t, strings.Contains(overlapConstraintDDL, "status <> 'cancelado'"),
		"cancelled appointments must not block the slot")
}

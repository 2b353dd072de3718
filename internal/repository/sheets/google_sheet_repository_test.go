package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabRanges(t *testing.T) {
	assert.Equal(t, "'Buyers-2024-03'!A:F", tabRange("Buyers-2024-03"))
	assert.Equal(t, "'Buyers-2024-03'!A1", tabAnchor("Buyers-2024-03"))
}

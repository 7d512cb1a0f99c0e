package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	now := time.Date(2025, 12, 9, 15, 4, 5, 0, time.UTC)

	got := Filename(7, now)

	assert.Equal(t, "7_spent_report_2025-12-09_1765292645000.xlsx", got)
}

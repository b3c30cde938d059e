package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQuotaManager_MonthKeyIsUTC(t *testing.T) {
	// Local time is already January, UTC still December.
	q := &QuotaManager{now: func() time.Time {
		return time.Date(2025, 1, 1, 0, 30, 0, 0, time.FixedZone("UTC+5", 5*3600))
	}}

	require.Equal(t, "2024-12", q.month())
}

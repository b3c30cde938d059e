package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWorker_Schedule(t *testing.T) {
	worker := NewWorker(zap.NewNop(), nil)
	require.Equal(t, "*/30 * * * *", worker.Schedule())
}

func TestWorker_ExecuteRunsACycleAndClearsBusyFlag(t *testing.T) {
	engine, _, api := newTestEngine(t)
	worker := NewWorker(zap.NewNop(), engine)

	require.True(t, worker.Ready(time.Now()))
	worker.Execute()
	require.True(t, worker.Ready(time.Now()))

	// No active packages means no remote call was made.
	require.Zero(t, api.trackCalls)
}

package chrono

import (
	"errors"
	"hansard-scraper/internal/components/telemetry"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardCron(t *testing.T) {
	recorder := telemetry.NewRecorder()
	cron := NewStandardCron(recorder)
	defer cron.Stop()

	require.NoError(t, cron.Cron("@every 1h", func() {}))
	require.Error(t, cron.Cron("not a schedule", func() {}))
}

func TestCronLogger(t *testing.T) {
	recorder := telemetry.NewRecorder()
	logger := cronLogger{tel: recorder}

	logger.Error(errors.New("boom"), "run", "entry", 1)
	require.True(t, recorder.Has("broken", "cron"))

	require.Equal(t, []any{"entry: 1", "now: x"}, logger.formatParams([]any{"entry", 1, "now", "x", "dangling"}))
}

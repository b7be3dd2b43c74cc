package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCurrentWeek(t *testing.T) {
	cases := []struct {
		now         time.Time
		expectStart time.Time
		expectStop  time.Time
	}{
		{
			now:         time.Date(2024, time.August, 26, 10, 30, 0, 0, Location),
			expectStart: time.Date(2024, time.August, 26, 0, 0, 0, 0, Location),
			expectStop:  time.Date(2024, time.September, 1, 0, 0, 0, 0, Location),
		},
		{
			now:         time.Date(2024, time.August, 25, 0, 0, 0, 0, Location),
			expectStart: time.Date(2024, time.August, 19, 0, 0, 0, 0, Location),
			expectStop:  time.Date(2024, time.August, 25, 0, 0, 0, 0, Location),
		},
		{
			now:         time.Date(2024, time.August, 31, 23, 59, 0, 0, Location),
			expectStart: time.Date(2024, time.August, 26, 0, 0, 0, 0, Location),
			expectStop:  time.Date(2024, time.September, 1, 0, 0, 0, 0, Location),
		},
		{
			now:         time.Date(2024, time.September, 3, 0, 0, 0, 0, Location),
			expectStart: time.Date(2024, time.September, 2, 0, 0, 0, 0, Location),
			expectStop:  time.Date(2024, time.September, 8, 0, 0, 0, 0, Location),
		},
	}

	for _, test := range cases {
		start, stop := CurrentWeek(test.now)
		require.Equal(t, test.expectStart, start)
		require.Equal(t, test.expectStop, stop)
	}
}

func TestNow(t *testing.T) {
	require.Equal(t, Location, Now().Location())
}

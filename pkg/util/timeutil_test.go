package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCivilDateUsesLocation(t *testing.T) {
	// 2024-03-01 20:00 UTC is already 2024-03-02 in UTC+8.
	instant := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	shanghai := time.FixedZone("UTC+8", 8*60*60)

	require.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), CivilDate(instant, shanghai))
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CivilDate(instant, nil))
}

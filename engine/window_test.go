package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewops/timeledger/engine"
)

func TestNewReportWindow_ResolvesOffset(t *testing.T) {
	// GIVEN: A one-day range at offset -300 (UTC-5)
	// WHEN: Resolving the window
	// THEN: It opens at 05:00Z and closes at 05:00Z the next day

	win, err := engine.NewReportWindow("2025-03-10", "2025-03-10", -300)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.March, 10, 5, 0, 0, 0, time.UTC), win.Start)
	assert.Equal(t, time.Date(2025, time.March, 11, 5, 0, 0, 0, time.UTC), win.End)
	assert.Equal(t, "2025-03-10", win.FromKey)
	assert.Equal(t, engine.DefaultOvertimeThresholdHours, win.OvertimeThresholdHours)
}

func TestNewReportWindow_ZeroOffset(t *testing.T) {
	win, err := engine.NewReportWindow("2025-03-10", "2025-03-12", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), win.Start)
	assert.Equal(t, time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC), win.End)
}

func TestNewReportWindow_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
	}{
		{"missing from", "", "2025-03-10"},
		{"missing to", "2025-03-10", ""},
		{"malformed from", "03/10/2025", "2025-03-12"},
		{"malformed to", "2025-03-10", "next tuesday"},
		{"inverted range", "2025-03-12", "2025-03-10"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := engine.NewReportWindow(c.from, c.to, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, engine.ErrInvalidWindow))
			assert.True(t, engine.IsClientError(err))

			var winErr *engine.InvalidWindowError
			assert.True(t, errors.As(err, &winErr))
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, engine.IsPermissionError(engine.ErrReportsDisabled))
	assert.False(t, engine.IsPermissionError(engine.ErrInvalidWindow))
	assert.True(t, engine.IsNotFound(engine.ErrTenantNotFound))
	assert.True(t, engine.IsNotFound(engine.ErrEmployeeNotFound))
	assert.False(t, engine.IsNotFound(engine.ErrReportsDisabled))
}

func TestPunchTypeValid(t *testing.T) {
	for _, typ := range []engine.PunchType{engine.PunchIn, engine.PunchOut, engine.PunchBreak, engine.PunchLunch} {
		assert.True(t, typ.Valid())
	}
	assert.False(t, engine.PunchType("NAP").Valid())
	assert.False(t, engine.PunchType("").Valid())
}

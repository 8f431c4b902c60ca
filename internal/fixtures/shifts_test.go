package fixtures

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/memory"
	shiftService "github.com/cmlabs-hris/worklog-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShifts(t *testing.T) {
	reqs, err := DefaultShifts()
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	defaults := 0
	for _, r := range reqs {
		if r.IsDefault {
			defaults++
			assert.Equal(t, "Day Shift", r.Name)
		}
	}
	assert.Equal(t, 1, defaults)

	night := reqs[2].ToShift()
	assert.True(t, night.IsNightShift())
}

func TestParseShifts_RejectsInvalidFixture(t *testing.T) {
	_, err := parseShifts([]byte(`
shifts:
  - name: Broken
    start_time: "25:00:00"
    end_time: "17:00:00"
    work_hours: 8
`))
	assert.Error(t, err)

	_, err = parseShifts([]byte("shifts: ["))
	assert.Error(t, err)
}

func TestSeedShifts_OnlyIntoEmptyTable(t *testing.T) {
	ctx := context.Background()
	svc := shiftService.NewShiftService(memory.NewShiftRepository(memory.NewStore()), memory.NewTransactor())

	n, err := SeedShifts(ctx, svc)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = SeedShifts(ctx, svc)
	require.NoError(t, err)
	assert.Zero(t, n)

	shifts, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, shifts, 3)
	assert.True(t, shifts[0].IsDefault)
}

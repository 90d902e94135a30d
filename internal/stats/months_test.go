package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlab/foodlab-api/internal/model"
)

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Gen 2026", MonthLabel(2026, 1))
	assert.Equal(t, "Mag 2025", MonthLabel(2025, 5))
	assert.Equal(t, "Dic 2024", MonthLabel(2024, 12))
	// out-of-range months degrade to the bare year
	assert.Equal(t, "2026", MonthLabel(2026, 0))
	assert.Equal(t, "2026", MonthLabel(2026, 13))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Gennaio 2026", PeriodLabel(2026, 1))
	assert.Equal(t, "Agosto 2025", PeriodLabel(2025, 8))
	assert.Equal(t, "2025", PeriodLabel(2025, 14))
}

func TestLastNMonthsSpansYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 17, 10, 0, 0, 0, time.UTC)
	months := LastNMonths(now, 12)
	require.Len(t, months, 12)
	assert.Equal(t, model.YearMonth{Year: 2025, Month: 3}, months[0])
	assert.Equal(t, model.YearMonth{Year: 2025, Month: 12}, months[9])
	assert.Equal(t, model.YearMonth{Year: 2026, Month: 1}, months[10])
	assert.Equal(t, model.YearMonth{Year: 2026, Month: 2}, months[11])
}

func TestLastNMonthsIgnoresDayOfMonth(t *testing.T) {
	// Jan 31 must not skip February when stepping months.
	now := time.Date(2026, time.January, 31, 23, 59, 0, 0, time.UTC)
	months := LastNMonths(now, 3)
	require.Len(t, months, 3)
	assert.Equal(t, model.YearMonth{Year: 2025, Month: 11}, months[0])
	assert.Equal(t, model.YearMonth{Year: 2025, Month: 12}, months[1])
	assert.Equal(t, model.YearMonth{Year: 2026, Month: 1}, months[2])
}

func TestLastNMonthsZeroOrNegative(t *testing.T) {
	assert.Nil(t, LastNMonths(time.Now(), 0))
	assert.Nil(t, LastNMonths(time.Now(), -4))
}

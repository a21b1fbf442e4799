package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsNonWorking(t *testing.T) {
	holidays := NewHolidaySet(day(2024, 1, 1))

	assert.True(t, IsNonWorking(DateOf(day(2024, 1, 6)), nil), "saturday")
	assert.True(t, IsNonWorking(DateOf(day(2024, 1, 7)), nil), "sunday")
	assert.True(t, IsNonWorking(DateOf(day(2024, 1, 1)), holidays), "holiday")
	assert.False(t, IsNonWorking(DateOf(day(2024, 1, 1)), nil), "holiday outside the set")
	assert.False(t, IsNonWorking(DateOf(day(2024, 1, 2)), holidays))
}

func TestDate(t *testing.T) {
	d := DateOf(time.Date(2024, 2, 28, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, Date{2024, time.February, 29}, d.AddDays(1))
	assert.Equal(t, Date{2024, time.March, 1}, d.AddDays(2))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
	assert.Equal(t, "2024-02-28", d.String())
	assert.Equal(t, 29, daysIn(2024, time.February))
	assert.Equal(t, 28, daysIn(2023, time.February))
}

package dashboard

import (
	"companysite/internal/models"
	"companysite/internal/recurrence"
)

// ResolveRegion returns the holiday region of a client database, or "" when
// the database has no company mapping.
func ResolveRegion(clientDatabase string, regions map[string]string) string {
	return regions[clientDatabase]
}

// calendars groups holidays by region once per view.
type calendars map[string]recurrence.HolidaySet

func newCalendars(holidays []models.Holiday) calendars {
	c := make(calendars)
	for _, h := range holidays {
		set, ok := c[h.HolidayRegion]
		if !ok {
			set = make(recurrence.HolidaySet)
			c[h.HolidayRegion] = set
		}
		set[recurrence.DateOf(h.HolidayDate)] = struct{}{}
	}
	return c
}

// forRegion returns the holiday set of region. Unmapped databases resolve to
// the empty region, which never has holidays.
func (c calendars) forRegion(region string) recurrence.HolidaySet {
	if region == "" {
		return nil
	}
	return c[region]
}

// Package availability classifies calendar days from reservation counts,
// capacity limits and blocked dates. It does no I/O; callers load the data
// and pass "today" explicitly.
package availability

import (
	"sort"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

// DayClass is the calendar state of a single day.
type DayClass int

const (
	Available DayClass = iota
	PartiallyBooked
	FullyBooked
	Blocked
)

func (c DayClass) String() string {
	switch c {
	case Available:
		return "available"
	case PartiallyBooked:
		return "partial"
	case FullyBooked:
		return "full"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Input is everything ClassifyMonth needs for one month.
type Input struct {
	Year  int
	Month time.Month
	Today domain.Date
	// Blocked holds the manually blocked days; weekends and past days are
	// derived.
	Blocked  []domain.Date
	Limits   map[domain.TruckType]int
	Counts   []domain.SlotCount
	HasPrior bool
}

// Month is the classification of every day of a month. The four date slices
// are ascending, pairwise disjoint and together cover the month.
type Month struct {
	Blocked              []domain.Date
	Partial              []domain.Date
	Full                 []domain.Date
	Available            []domain.Date
	HasPriorReservations bool
	// Unconfigured lists bookings whose truck type has no limit row, or a
	// zero limit. They are left out of the arithmetic.
	Unconfigured []domain.SlotCount
}

// MonthRange returns the first and last day of the month.
func MonthRange(year int, month time.Month) (domain.Date, domain.Date, error) {
	if month < time.January || month > time.December {
		return domain.Date{}, domain.Date{}, domain.NewValidationError("month", "must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return domain.Date{}, domain.Date{}, domain.NewValidationError("year", "must be between 1 and 9999")
	}
	first := domain.NewDate(year, month, 1)
	last := domain.NewDate(year, month+1, 0)
	return first, last, nil
}

// IsAutoBlocked reports weekends and days strictly before today.
func IsAutoBlocked(d, today domain.Date) bool {
	return d.IsWeekend() || d.Before(today)
}

// ClassifyBookings applies the booking rule to a day that is not blocked.
// bookings maps truck type to the day's reservation count.
func ClassifyBookings(bookings map[domain.TruckType]int, limits map[domain.TruckType]int) DayClass {
	booked := 0
	for truckType, count := range bookings {
		limit, ok := limits[truckType]
		if !ok || limit <= 0 || count <= 0 {
			continue
		}
		booked++
		if count < limit {
			return PartiallyBooked
		}
	}
	if booked == 0 {
		return Available
	}
	return FullyBooked
}

// ClassifyMonth classifies each day of in.Year/in.Month.
func ClassifyMonth(in Input) (Month, error) {
	first, last, err := MonthRange(in.Year, in.Month)
	if err != nil {
		return Month{}, err
	}

	manual := make(map[domain.Date]struct{}, len(in.Blocked))
	for _, d := range in.Blocked {
		manual[d] = struct{}{}
	}

	byDay := make(map[domain.Date]map[domain.TruckType]int)
	out := Month{HasPriorReservations: in.HasPrior}
	for _, c := range in.Counts {
		if c.Date.Before(first) || c.Date.After(last) || c.Count <= 0 {
			continue
		}
		if limit, ok := in.Limits[c.TruckType]; !ok || limit <= 0 {
			out.Unconfigured = append(out.Unconfigured, c)
		}
		day := byDay[c.Date]
		if day == nil {
			day = make(map[domain.TruckType]int)
			byDay[c.Date] = day
		}
		day[c.TruckType] += c.Count
	}
	sortSlotCounts(out.Unconfigured)

	for d := first; !d.After(last); d = d.AddDays(1) {
		class := Blocked
		if _, isManual := manual[d]; !isManual && !IsAutoBlocked(d, in.Today) {
			class = ClassifyBookings(byDay[d], in.Limits)
		}
		switch class {
		case Blocked:
			out.Blocked = append(out.Blocked, d)
		case PartiallyBooked:
			out.Partial = append(out.Partial, d)
		case FullyBooked:
			out.Full = append(out.Full, d)
		default:
			out.Available = append(out.Available, d)
		}
	}
	return out, nil
}

// Remaining returns limit minus count for every configured truck type. The
// value is not clamped, so an over-booked type reports a negative number.
func Remaining(limits map[domain.TruckType]int, counts map[domain.TruckType]int) map[domain.TruckType]int {
	out := make(map[domain.TruckType]int, len(limits))
	for truckType, limit := range limits {
		out[truckType] = limit - counts[truckType]
	}
	return out
}

func sortSlotCounts(xs []domain.SlotCount) {
	sort.Slice(xs, func(i, j int) bool {
		if c := xs[i].Date.Compare(xs[j].Date); c != 0 {
			return c < 0
		}
		return xs[i].TruckType < xs[j].TruckType
	})
}

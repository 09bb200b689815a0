package reservation

import "fmt"

// Slots cover a 27-hour logical booking day: 09:00 through 23:00 on
// the booking date, then 00:00 through 02:00 labelled as next-day
// hours. Next-day slots still belong to the booking date; conflict
// checks compare date strings only and never reach across dates.
const (
	dayFirstHour    = 9
	dayLastHour     = 23
	nextDayLastHour = 2

	NextDaySuffix = " (next day)"
)

func slotLabel(hour int, nextDay bool) string {
	if nextDay {
		return fmt.Sprintf("%02d:00%s", hour, NextDaySuffix)
	}
	return fmt.Sprintf("%02d:00", hour)
}

// AllSlots enumerates every bookable slot label in chronological order.
func AllSlots() []string {
	slots := make([]string, 0, dayLastHour-dayFirstHour+1+nextDayLastHour+1)
	for hour := dayFirstHour; hour <= dayLastHour; hour++ {
		slots = append(slots, slotLabel(hour, false))
	}
	for hour := 0; hour <= nextDayLastHour; hour++ {
		slots = append(slots, slotLabel(hour, true))
	}
	return slots
}

var validSlots = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, s := range AllSlots() {
		m[s] = struct{}{}
	}
	return m
}()

func IsValidSlot(label string) bool {
	_, ok := validSlots[label]
	return ok
}

// NormalizeSlots removes duplicate labels while preserving the order of
// first appearance. The conflict engine assumes deduplicated input, so
// every candidate passes through here before admission.
func NormalizeSlots(slots []string) []string {
	seen := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

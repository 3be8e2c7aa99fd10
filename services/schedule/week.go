package schedule

import (
	"fmt"
	"time"

	"guildroster/models"
)

// weekKeyLayout is the date layout a WeekKey is formatted with.
const weekKeyLayout = "2006-01-02"

// ParseAnchor maps a configured weekday name to time.Weekday, defaulting to
// Thursday (the guild's weekly reset day) for anything unrecognized.
func ParseAnchor(name string) time.Weekday {
	switch name {
	case "Sunday":
		return time.Sunday
	case "Monday":
		return time.Monday
	case "Tuesday":
		return time.Tuesday
	case "Wednesday":
		return time.Wednesday
	case "Thursday":
		return time.Thursday
	case "Friday":
		return time.Friday
	case "Saturday":
		return time.Saturday
	default:
		return time.Thursday
	}
}

// StartOfWindow returns the WeekKey of the window containing t: the most
// recent occurrence of the anchor weekday on or before t.
func StartOfWindow(t time.Time, anchor time.Weekday) models.WeekKey {
	back := (int(t.Weekday()) - int(anchor) + 7) % 7
	start := t.AddDate(0, 0, -back)
	return models.WeekKey(start.Format(weekKeyLayout))
}

// NextWindow returns the WeekKey seven days after key.
func NextWindow(key models.WeekKey) models.WeekKey {
	start, err := WindowStart(key)
	if err != nil {
		return key
	}
	return models.WeekKey(start.AddDate(0, 0, 7).Format(weekKeyLayout))
}

// WindowStart parses a WeekKey back into the date its window starts on.
func WindowStart(key models.WeekKey) (time.Time, error) {
	return time.Parse(weekKeyLayout, string(key))
}

// DayLabels returns the seven day labels of the window, in window order,
// e.g. "Thu (08-27)". Everything downstream treats these as opaque strings;
// this is the only place they are ever constructed.
func DayLabels(key models.WeekKey) []string {
	start, err := WindowStart(key)
	if err != nil {
		return nil
	}
	labels := make([]string, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		labels[i] = fmt.Sprintf("%s (%s)", d.Weekday().String()[:3], d.Format("01-02"))
	}
	return labels
}

// PlainWeekdays returns the window's weekday abbreviations without dates, in
// window order. The roster poll is keyed by these.
func PlainWeekdays(anchor time.Weekday) []string {
	days := make([]string, 7)
	for i := 0; i < 7; i++ {
		days[i] = time.Weekday((int(anchor) + i) % 7).String()[:3]
	}
	return days
}

// WeekRange renders the window's date span for display, e.g. "08/27 ~ 09/02".
func WeekRange(key models.WeekKey) string {
	start, err := WindowStart(key)
	if err != nil {
		return ""
	}
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%s ~ %s", start.Format("01/02"), end.Format("01/02"))
}

// EmptyRecord builds the default ScheduleRecord for a window: all seven days
// present with no offered time, nobody signed up, no final time.
func EmptyRecord(key models.WeekKey) *models.ScheduleRecord {
	slots := make(models.ProposedSlots, 7)
	for _, label := range DayLabels(key) {
		slots[label] = ""
	}
	return &models.ScheduleRecord{
		ProposedSlots: slots,
		Availability:  models.Availability{models.UnavailableKey: []string{}},
		FinalTime:     "",
	}
}

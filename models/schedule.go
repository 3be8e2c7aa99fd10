package models

// UnavailableKey is the reserved availability entry for members who can make
// none of the offered times. It is carried across slot edits untouched.
const UnavailableKey = "__UNAVAILABLE__"

// WeekKey identifies one 7-day sign-up window by the ISO date of its first
// day (e.g. "2026-08-27"). Keys order chronologically as plain strings.
type WeekKey string

// ProposedSlots maps each of the window's seven day labels (e.g.
// "Thu (08-27)") to the time the leader offers on that day. An empty time
// means the day is not open for sign-up. The map always holds all seven
// labels once a record has been normalized.
type ProposedSlots map[string]string

// Availability maps a slot key (day label + " " + time) to the names of the
// members who signed up for it, plus the UnavailableKey sentinel entry.
type Availability map[string][]string

// ScheduleRecord is one team's sign-up state for one week window.
type ScheduleRecord struct {
	ProposedSlots ProposedSlots `bson:"proposedSlots" json:"proposedSlots"`
	Availability  Availability  `bson:"availability" json:"availability"`
	FinalTime     string        `bson:"finalTime" json:"finalTime"`
}

// ScheduleSet holds a team's live week windows. After normalization it
// contains exactly two entries: the current window and the next one.
type ScheduleSet map[WeekKey]*ScheduleRecord

// WeekPair is the view handed to the UI layer: the two live records.
type WeekPair struct {
	ThisWeek    WeekKey         `json:"thisWeek"`
	NextWeek    WeekKey         `json:"nextWeek"`
	ThisRecord  *ScheduleRecord `json:"thisRecord"`
	NextRecord  *ScheduleRecord `json:"nextRecord"`
	WeekRange   string          `json:"weekRange"`
	NextRange   string          `json:"nextRange"`
}

// SlotKey derives the availability key for an offered day/time pair. It only
// exists while that exact pair is proposed; callers must treat it as opaque.
func SlotKey(dayLabel, timeStr string) string {
	return dayLabel + " " + timeStr
}

// AvailabilitySubmission is a member's response to one window's proposed
// slots. Selections are keyed by day label and interpreted against the
// record's currently proposed times only.
type AvailabilitySubmission struct {
	MemberID            string          `json:"memberId" binding:"required"`
	Selections          map[string]bool `json:"selections"`
	GloballyUnavailable bool            `json:"globallyUnavailable"`
}

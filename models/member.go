package models

// MemberProfile is one entry of the guild roster, keyed by in-game name.
type MemberProfile struct {
	Name          string                    `bson:"name" json:"name"`
	Job           string                    `bson:"job" json:"job"`
	Level         string                    `bson:"level" json:"level"`
	Atk           string                    `bson:"atk" json:"atk"`
	IsGuildMember bool                      `bson:"isGuildMember" json:"isGuildMember"`
	FCMToken      string                    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	WeeklyData    map[WeekKey]*WeeklyEntry  `bson:"weeklyData,omitempty" json:"weeklyData,omitempty"`
}

// WeeklyEntry is a member's self-reported sign-up poll for one week window:
// which plain weekdays they can attend and how many runs they already plan.
type WeeklyEntry struct {
	Availability       map[string]bool `bson:"availability" json:"availability"`
	ParticipationCount int             `bson:"participationCount" json:"participationCount"`
}

// AvailableOn reports whether the member marked the given plain weekday for
// the given week. Missing entries read as unavailable.
func (p *MemberProfile) AvailableOn(week WeekKey, day string) bool {
	if p == nil || p.WeeklyData == nil {
		return false
	}
	entry, ok := p.WeeklyData[week]
	if !ok || entry == nil {
		return false
	}
	return entry.Availability[day]
}

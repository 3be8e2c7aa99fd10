package models

// MaxTeamSize is the fixed number of member slots a team carries. Empty
// slots keep their place so the UI can render a stable six-row editor.
const MaxTeamSize = 6

// TeamMember is one row of a team's member list. Job, level and atk are
// denormalized copies of the roster profile, refreshed on every save.
type TeamMember struct {
	Name  string `bson:"name" json:"name"`
	Job   string `bson:"job" json:"job"`
	Level string `bson:"level" json:"level"`
	Atk   string `bson:"atk" json:"atk"`
}

// Team is one recruiting team. Schedules holds the live week windows; any
// historical layout found in storage is normalized on read.
type Team struct {
	ID        string       `bson:"id" json:"id"`
	Name      string       `bson:"teamName" json:"teamName"`
	Remark    string       `bson:"teamRemark" json:"teamRemark"`
	Members   []TeamMember `bson:"member" json:"member"`
	Schedules ScheduleSet  `bson:"schedules" json:"schedules"`
}

// EmptyMembers returns a full-size member list of blank slots.
func EmptyMembers() []TeamMember {
	return make([]TeamMember, MaxTeamSize)
}

// FilledCount reports how many member slots carry a name.
func (t *Team) FilledCount() int {
	n := 0
	for _, m := range t.Members {
		if m.Name != "" {
			n++
		}
	}
	return n
}

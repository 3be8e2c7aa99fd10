// File: guildroster/handlers/bundle.go
package handlers

// HandlerBundle groups all endpoint handlers into one struct so routes can
// be registered from a single wiring point.
type HandlerBundle struct {
	Schedule *ScheduleHandler
	Team     *TeamHandler
	Roster   *RosterHandler
	Export   *ExportHandler
}

package projections

import (
	"context"

	domainSchedule "fitstudio/internal/domain/schedule"
)

// GetScheduleDeps holds dependencies for GetSchedule.
type GetScheduleDeps struct {
	ScheduleStore ScheduleStore
}

// QueryGetSchedule builds the weekly timetable grid.
func QueryGetSchedule(ctx context.Context, deps GetScheduleDeps) (domainSchedule.Grid, error) {
	classes, err := deps.ScheduleStore.List(ctx)
	if err != nil {
		return domainSchedule.Grid{}, err
	}
	return domainSchedule.BuildGrid(classes), nil
}

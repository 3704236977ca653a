package types

import "time"

type ActivityType string

const (
	ActivityTypeSuccess ActivityType = "success"
	ActivityTypeInfo    ActivityType = "info"
	ActivityTypeWarning ActivityType = "warning"
	ActivityTypeError   ActivityType = "error"
)

// MaxActivities bounds the activity log; older entries fall off the end.
const MaxActivities = 10

type Activity struct {
	ID        string       `json:"id"`
	Message   string       `json:"message"`
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
}

package app

import (
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
)

// View is the screen the console is showing.
type View int

// Views.
const (
	ViewForm View = iota
	ViewDashboard
)

func (v View) String() string {
	switch v {
	case ViewForm:
		return "form"
	case ViewDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Reachability is the outcome of the last health check.
type Reachability int

// Reachability states.
const (
	ReachabilityUnknown Reachability = iota
	Reachable
	Unreachable
)

func (r Reachability) String() string {
	switch r {
	case Reachable:
		return "online"
	case Unreachable:
		return "offline"
	default:
		return "checking"
	}
}

// NotificationKind selects how a notification is presented.
type NotificationKind int

// Notification kinds.
const (
	NotifySuccess NotificationKind = iota
	NotifyError
	NotifyInfo
)

func (k NotificationKind) String() string {
	switch k {
	case NotifySuccess:
		return "success"
	case NotifyError:
		return "error"
	default:
		return "info"
	}
}

// Notification is the single message shown to the user.
type Notification struct {
	RaisedAt time.Time
	Message  string
	Kind     NotificationKind
}

// Snapshot is a copy of the coordinator state. Callers may keep and read it
// freely; it never changes after it is taken.
type Snapshot struct {
	Notification *Notification
	LastResult   *model.PredictionRecord
	ModelDetails *model.ModelDetails
	History      []model.PredictionRecord
	View         View
	Reachability Reachability
	Busy         bool
}

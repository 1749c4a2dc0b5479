package model

import "time"

type ItemCreate struct {
	OwnerID       int64
	Kind          ItemKind
	Title         string
	Description   string
	Location      string
	AllDay        bool
	From          time.Time
	To            time.Time
	RepeatType    RepeatType
	Notifications []time.Duration
	Visibility    Visibility
	Source        string
}

type ItemUpdate struct {
	Kind          ItemKind
	Title         string
	Description   string
	Location      string
	AllDay        bool
	From          time.Time
	To            time.Time
	Notifications []time.Duration
	Visibility    Visibility
}

type CalendarItem struct {
	ID         string
	UID        string
	RepeatRule string
	Exceptions map[int64]struct{}
	Until      *time.Time
	Completed  bool
	ItemCreate
}

type ItemKind int

const (
	ItemKindEvent ItemKind = iota
	ItemKindReminder
	ItemKindTodo
)

type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityShared
)

// SourcePersonal marks items created in the app itself; SourceImport marks
// items pulled in through the interchange import.
const (
	SourcePersonal = "personal"
	SourceImport   = "import"
)

type RepeatType int

const (
	RepeatTypeNone RepeatType = iota
	RepeatTypeEveryDay
	RepeatTypeEveryThreeDays
	RepeatTypeEveryWeek
	RepeatTypeEveryMonth
	RepeatTypeEveryYear
)

type ItemsFilter struct {
	From     time.Time
	To       time.Time
	OwnerIDs []int64
	Kinds    []ItemKind
}

// ConflictReport lists the titles of existing items that overlap a proposed
// interval. A non-empty report does not forbid saving; it only informs the
// caller.
type ConflictReport struct {
	Conflicting bool
	Titles      []string
}

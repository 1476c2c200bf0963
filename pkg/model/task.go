package model

// Habitica values for the daily task type and its weekly schedule.
const (
	TypeDaily       = "daily"
	FrequencyWeekly = "weekly"
)

// Repeat marks the weekdays a daily is active on.
type Repeat struct {
	Monday    bool `json:"m"`
	Tuesday   bool `json:"t"`
	Wednesday bool `json:"w"`
	Thursday  bool `json:"th"`
	Friday    bool `json:"f"`
	Saturday  bool `json:"s"`
	Sunday    bool `json:"su"`
}

// EveryDay is the only recurrence this tool ever creates.
var EveryDay = Repeat{true, true, true, true, true, true, true}

// Task is a daily as returned by the remote task service.
type Task struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Text      string   `json:"text"`
	Priority  float64  `json:"priority"`
	StartDate *ISOTime `json:"startDate,omitempty"`
	Frequency string   `json:"frequency,omitempty"`
	Repeat    *Repeat  `json:"repeat,omitempty"`
	Completed bool     `json:"completed"`
	IsDue     bool     `json:"isDue"`
}

// TaskSpec is a daily ready for submission.
type TaskSpec struct {
	Type      string  `json:"type"`
	Text      string  `json:"text"`
	Priority  float64 `json:"priority"`
	StartDate ISOTime `json:"startDate"`
	Frequency string  `json:"frequency"`
	Repeat    Repeat  `json:"repeat"`
	// Difficulty is the level the priority was resolved from; it is not sent.
	Difficulty int `json:"-"`
}

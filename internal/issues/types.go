package issues

import "strings"

// Label is a tracker label with its display color.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Thread is a chat discussion linked to an issue.
type Thread struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// Issue is the subset of a tracker issue shown on the issues page.
type Issue struct {
	ID            string   `json:"id"`
	Identifier    string   `json:"identifier"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Priority      int      `json:"priority"`
	PriorityLabel string   `json:"priorityLabel"`
	StateName     string   `json:"stateName"`
	StateType     string   `json:"stateType"`
	StateColor    string   `json:"stateColor"`
	AssigneeName  string   `json:"assigneeName"`
	Labels        []Label  `json:"labels"`
	SlackThreads  []Thread `json:"slackThreads"`
}

// Priority values as reported by the tracker. 0 means no priority.
const (
	PriorityNone   = 0
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityNormal = 3
	PriorityLow    = 4
)

// PrioritySlug returns the CSS-friendly priority name.
func (i Issue) PrioritySlug() string {
	switch i.Priority {
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return "none"
	}
}

// stateLabels are the section titles per workflow state type.
var stateLabels = map[string]string{
	"started":   "In Progress",
	"unstarted": "Todo",
	"backlog":   "Backlog",
	"completed": "Done",
	"cancelled": "Cancelled",
	"triage":    "Triage",
}

// StateLabel returns the section title of a state type. Unknown types are
// shown as written.
func StateLabel(stateType string) string {
	if l, ok := stateLabels[stateType]; ok {
		return l
	}
	return stateType
}

// isSlack reports whether an attachment links a Slack thread.
func isSlack(sourceType, url string) bool {
	return strings.EqualFold(sourceType, "slack") || strings.Contains(url, ".slack.com/")
}

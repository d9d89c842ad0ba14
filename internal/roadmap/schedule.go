package roadmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlanItem is one planned piece of work.
type PlanItem struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Assignment is the ordered list of items planned for one developer in a week.
type Assignment struct {
	Dev   string     `json:"dev"`
	Items []PlanItem `json:"items"`
}

// WeekSchedule is one row of the schedule. Devs keeps the authored order.
type WeekSchedule struct {
	Week  string       `json:"week"`
	Label string       `json:"label"`
	Sync  string       `json:"sync,omitempty"`
	Devs  []Assignment `json:"devs"`
}

// Items returns the items planned for dev in this week, or nil.
func (w WeekSchedule) Items(dev string) []PlanItem {
	for _, a := range w.Devs {
		if a.Dev == dev {
			return a.Items
		}
	}
	return nil
}

// Schedule is the full plan in week order.
type Schedule []WeekSchedule

// DevNames returns every developer named in the schedule in first-seen order.
func (s Schedule) DevNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, w := range s {
		for _, a := range w.Devs {
			if !seen[a.Dev] {
				seen[a.Dev] = true
				names = append(names, a.Dev)
			}
		}
	}
	return names
}

// ParseError reports a structural problem in a schedule file.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// LoadSchedule reads a schedule from a YAML file.
func LoadSchedule(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule file: %w", err)
	}
	return ParseSchedule(data)
}

// ParseSchedule parses a schedule from YAML bytes. An empty document is an
// empty schedule.
//
// The document is a sequence of weeks:
//
//	- week: W1
//	  label: Foundations
//	  sync: Kickoff call
//	  devs:
//	    Alice:
//	      - title: Search API
//	        description: Index and query endpoints
//	    Bob:
//	      - Billing
//
// A plan item may be a bare string, which is taken as its title.
func ParseSchedule(data []byte) (Schedule, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return Schedule{}, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return Schedule{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: node.Line, Column: node.Column, Message: "expected sequence of weeks at root"}
	}

	schedule := make(Schedule, 0, len(node.Content))
	for _, weekNode := range node.Content {
		week, err := parseWeek(weekNode)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, week)
	}

	return schedule, nil
}

// parseWeek extracts one week from a mapping node.
func parseWeek(node *yaml.Node) (WeekSchedule, error) {
	if node.Kind != yaml.MappingNode {
		return WeekSchedule{}, &ParseError{Line: node.Line, Column: node.Column, Message: "expected mapping for week"}
	}

	var week WeekSchedule
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		switch keyNode.Value {
		case "week":
			week.Week = valueNode.Value
		case "label":
			week.Label = valueNode.Value
		case "sync":
			week.Sync = valueNode.Value
		case "devs":
			devs, err := parseDevs(valueNode)
			if err != nil {
				return WeekSchedule{}, err
			}
			week.Devs = devs
		}
	}

	if week.Week == "" {
		return WeekSchedule{}, &ParseError{Line: node.Line, Column: node.Column, Message: "week is missing the 'week' field"}
	}

	return week, nil
}

// parseDevs walks the devs mapping in document order.
func parseDevs(node *yaml.Node) ([]Assignment, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &ParseError{Line: node.Line, Column: node.Column, Message: "expected mapping for 'devs' field"}
	}

	var devs []Assignment
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		items, err := parseItems(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		devs = append(devs, Assignment{Dev: keyNode.Value, Items: items})
	}

	return devs, nil
}

// parseItems extracts the plan items of one developer.
func parseItems(node *yaml.Node) ([]PlanItem, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: node.Line, Column: node.Column, Message: "expected sequence of plan items"}
	}

	items := make([]PlanItem, 0, len(node.Content))
	for _, itemNode := range node.Content {
		switch itemNode.Kind {
		case yaml.ScalarNode:
			items = append(items, PlanItem{Title: itemNode.Value})
		case yaml.MappingNode:
			var item PlanItem
			if err := itemNode.Decode(&item); err != nil {
				return nil, &ParseError{Line: itemNode.Line, Column: itemNode.Column, Message: err.Error()}
			}
			if item.Title == "" {
				return nil, &ParseError{Line: itemNode.Line, Column: itemNode.Column, Message: "plan item is missing a title"}
			}
			items = append(items, item)
		default:
			return nil, &ParseError{Line: itemNode.Line, Column: itemNode.Column, Message: "expected title or mapping for plan item"}
		}
	}

	return items, nil
}

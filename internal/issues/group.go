package issues

import "sort"

// stateOrder is the display order of known workflow state types.
var stateOrder = []string{"started", "unstarted", "triage", "backlog", "completed", "cancelled"}

// Group is the issues sharing a workflow state type.
type Group struct {
	StateType string
	Label     string
	Color     string
	Issues    []Issue
}

// GroupByStateType buckets issues by state type. Known types come first in a
// fixed order, unknown types follow alphabetically. Inside a group issues are
// sorted by priority, urgent first and unprioritised last, then identifier.
func GroupByStateType(issues []Issue) []Group {
	buckets := make(map[string][]Issue)
	for _, is := range issues {
		buckets[is.StateType] = append(buckets[is.StateType], is)
	}

	var order []string
	known := make(map[string]bool, len(stateOrder))
	for _, st := range stateOrder {
		known[st] = true
		if _, ok := buckets[st]; ok {
			order = append(order, st)
		}
	}
	var extra []string
	for st := range buckets {
		if !known[st] {
			extra = append(extra, st)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	groups := make([]Group, 0, len(order))
	for _, st := range order {
		items := buckets[st]
		sort.SliceStable(items, func(i, j int) bool {
			pi, pj := priorityRank(items[i].Priority), priorityRank(items[j].Priority)
			if pi != pj {
				return pi < pj
			}
			return items[i].Identifier < items[j].Identifier
		})
		groups = append(groups, Group{
			StateType: st,
			Label:     StateLabel(st),
			Color:     stateColor(items),
			Issues:    items,
		})
	}
	return groups
}

// priorityRank sorts "no priority" after every real priority.
func priorityRank(p int) int {
	if p <= PriorityNone {
		return PriorityLow + 1
	}
	return p
}

// stateColor returns the first state color reported in the group.
func stateColor(items []Issue) string {
	for _, is := range items {
		if is.StateColor != "" {
			return is.StateColor
		}
	}
	return ""
}

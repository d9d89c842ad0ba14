package content

// Group is an ordered bucket of records sharing a key.
type Group struct {
	Key   string
	Items []Deliverable
}

// GroupBy buckets records by key, keeping the first-seen order of keys and the
// input order inside each bucket.
func GroupBy(ds []Deliverable, key func(Deliverable) string) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, d := range ds {
		k := key(d)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Items = append(groups[i].Items, d)
	}
	return groups
}

// GroupByOwner buckets records by frontmatter owner.
func GroupByOwner(ds []Deliverable) []Group {
	return GroupBy(ds, func(d Deliverable) string { return d.Frontmatter.Owner })
}

// GroupByEnvironment buckets records by frontmatter environment.
func GroupByEnvironment(ds []Deliverable) []Group {
	return GroupBy(ds, func(d Deliverable) string { return string(d.Frontmatter.Environment) })
}

// FilterEnvironment returns the records deployed to env, in input order.
func FilterEnvironment(ds []Deliverable, env Environment) []Deliverable {
	out := []Deliverable{}
	for _, d := range ds {
		if d.Frontmatter.Environment == env {
			out = append(out, d)
		}
	}
	return out
}

// FilterStatus returns the records with the given status, in input order.
func FilterStatus(ds []Deliverable, status Status) []Deliverable {
	out := []Deliverable{}
	for _, d := range ds {
		if d.Frontmatter.Status == status {
			out = append(out, d)
		}
	}
	return out
}

// Counts summarises records for the overview stat grid.
type Counts struct {
	Total    int
	InDev    int
	InReview int
	Deployed int
	Blocked  int
}

// CountByStatus tallies records by status.
func CountByStatus(ds []Deliverable) Counts {
	c := Counts{Total: len(ds)}
	for _, d := range ds {
		switch d.Frontmatter.Status {
		case StatusInDev:
			c.InDev++
		case StatusInReview:
			c.InReview++
		case StatusDeployed:
			c.Deployed++
		case StatusBlocked:
			c.Blocked++
		}
	}
	return c
}

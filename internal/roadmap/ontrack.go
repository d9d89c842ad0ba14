package roadmap

import "github.com/ariel-frischer/statusboard/internal/content"

// Target is the list of deliverable titles a developer committed to.
type Target struct {
	Dev          string
	Deliverables []string
}

// Declared is one committed deliverable and the status of its record.
// Status is empty when the developer has no record with that title.
type Declared struct {
	Title  string
	Status content.Status
	Slug   string
}

// Started reports whether a record exists for the deliverable.
func (d Declared) Started() bool { return d.Slug != "" }

// Progress is the on-track summary of one developer.
type Progress struct {
	Dev        string
	Planned    int
	Shipped    int
	InProgress int
	Blocked    int
	Percent    int
	Items      []Declared
}

// ShippedShare is the shipped bar width in percent.
func (p Progress) ShippedShare() float64 { return Share(p.Shipped, p.Planned) }

// InProgressShare is the in-progress bar width in percent.
func (p Progress) InProgressShare() float64 { return Share(p.InProgress, p.Planned) }

// BlockedShare is the blocked bar width in percent.
func (p Progress) BlockedShare() float64 { return Share(p.Blocked, p.Planned) }

// OnTrack compares each developer's commitments to their records. Counts are
// taken over all records the developer owns; Planned is the number of
// commitments.
func OnTrack(targets []Target, records []content.Deliverable) []Progress {
	out := make([]Progress, 0, len(targets))
	for _, t := range targets {
		owned := ownedBy(records, t.Dev)
		p := Progress{Dev: t.Dev, Planned: len(t.Deliverables)}

		for _, r := range owned {
			switch r.Frontmatter.Status {
			case content.StatusDeployed:
				p.Shipped++
			case content.StatusInDev, content.StatusInReview:
				p.InProgress++
			case content.StatusBlocked:
				p.Blocked++
			}
		}
		p.Percent = CompletionPercent(p.Shipped, p.Planned)

		for _, title := range t.Deliverables {
			d := Declared{Title: title}
			if r, ok := Match(owned, title, t.Dev); ok {
				d.Status = r.Frontmatter.Status
				d.Slug = r.Slug
			}
			p.Items = append(p.Items, d)
		}

		out = append(out, p)
	}
	return out
}

func ownedBy(records []content.Deliverable, dev string) []content.Deliverable {
	var out []content.Deliverable
	for _, r := range records {
		if r.Frontmatter.Owner == dev {
			out = append(out, r)
		}
	}
	return out
}

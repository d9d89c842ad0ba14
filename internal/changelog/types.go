package changelog

// Section is one labelled group produced by Scan.
// Label is the literal text after the heading marker and Text is the
// space-joined content lines that followed it.
type Section struct {
	Label string
	Text  string
}

// Entry is a single dated changelog entry of a deliverable.
type Entry struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// Commit is a single item of the commit log.
// Author is empty when the bullet carried no `— *author*` attribution and
// Date is empty when no date heading preceded the bullet.
type Commit struct {
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// HasAuthor reports whether the commit carried an attribution.
func (c Commit) HasAuthor() bool {
	return c.Author != ""
}

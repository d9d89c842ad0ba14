package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixture() []Deliverable {
	mk := func(slug, owner string, status Status, env Environment) Deliverable {
		return Deliverable{Slug: slug, Frontmatter: Frontmatter{Title: slug, Owner: owner, Status: status, Environment: env}}
	}
	return []Deliverable{
		mk("a", "Bob", StatusDeployed, EnvProd),
		mk("b", "Alice", StatusInDev, EnvDev),
		mk("c", "Bob", StatusBlocked, EnvDev),
		mk("d", "Alice", StatusInReview, EnvProd),
		mk("e", "Carol", StatusDeployed, EnvProd),
	}
}

func TestGroupByOwner(t *testing.T) {
	t.Parallel()

	groups := GroupByOwner(fixture())

	var keys []string
	var sizes []int
	for _, g := range groups {
		keys = append(keys, g.Key)
		sizes = append(sizes, len(g.Items))
	}
	assert.Equal(t, []string{"Bob", "Alice", "Carol"}, keys)
	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Equal(t, "c", groups[0].Items[1].Slug)
}

func TestGroupByEnvironment(t *testing.T) {
	t.Parallel()

	groups := GroupByEnvironment(fixture())

	assert.Len(t, groups, 2)
	assert.Equal(t, "prod", groups[0].Key)
	assert.Len(t, groups[0].Items, 3)
}

func TestGroupBy_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GroupByOwner(nil))
}

func TestFilters(t *testing.T) {
	t.Parallel()

	ds := fixture()

	assert.Len(t, FilterEnvironment(ds, EnvDev), 2)
	assert.Len(t, FilterStatus(ds, StatusDeployed), 2)
	assert.Empty(t, FilterStatus(ds, StatusStaging))
	assert.NotNil(t, FilterStatus(nil, StatusDeployed))
}

func TestCountByStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Counts{Total: 5, InDev: 1, InReview: 1, Deployed: 2, Blocked: 1}, CountByStatus(fixture()))
	assert.Equal(t, Counts{}, CountByStatus(nil))
}

func TestStatus_Label(t *testing.T) {
	t.Parallel()

	tests := map[Status]string{
		StatusInDev:    "IN DEV",
		StatusInReview: "IN REVIEW",
		StatusDeployed: "DEPLOYED",
		StatusBlocked:  "BLOCKED",
		StatusStaging:  "STAGING",
		"custom":       "CUSTOM",
	}
	for status, want := range tests {
		assert.Equal(t, want, status.Label())
	}
	assert.Equal(t, "planned", Status("").Slug())
	assert.Equal(t, "in-dev", StatusInDev.Slug())
}

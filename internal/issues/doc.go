// Package issues mirrors a team's issues from the Linear GraphQL API.
//
// The client is read-only. Callers render an explanatory panel for
// ErrNoTeam and ErrNoAPIKey and an error panel for any other failure; a
// tracker problem never aborts the rest of the page.
package issues

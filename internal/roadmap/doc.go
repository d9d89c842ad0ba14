// Package roadmap joins the hand-authored delivery schedule to the content
// records that track actual progress.
//
// A schedule is a list of weeks; each week assigns planned items to developers.
// Reconciliation annotates every planned item with the first record whose
// title matches case-insensitively and whose owner matches exactly. An item
// without a match is not an error; it is rendered as not started.
//
// All functions in this package are pure and safe for concurrent use.
package roadmap

// Package identity resolves session-scoped speaker labels to durable
// speaker profiles.
//
// A mapping is the only mutable link between a transcript's labels and the
// people behind them. Statistics stay label-keyed, so assigning, changing,
// or clearing a mapping never invalidates computed stats; it only changes
// which rows a profile's totals fold together.
package identity

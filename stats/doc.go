// Package stats computes per-speaker statistics over merged transcripts
// and folds them across transcripts into per-identity totals.
//
// Statistics are label-keyed: they are computed once per transcript from
// the session-scoped speaker labels and never change when the label-to-
// identity mapping changes. Only the join from label-keyed rows to
// identity-keyed totals moves with the mapping, so re-annotation never
// forces recomputation.
//
// The set of statistics is declared in a Registry value rather than
// hard-coded into any rendering path; presentation layers consume
// Registry.Export and render only registered keys.
package stats

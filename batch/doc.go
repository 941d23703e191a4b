// Package batch runs the stats pipeline over a manifest of transcript
// payload locations with a bounded worker pool.
//
// Each entry is independent: a failed fetch, parse, or store marks that
// entry failed and the run continues. The run itself errors only on
// invalid input or a canceled context.
package batch

package stats

import (
	"sort"
	"time"
)

// TranscriptEntry is one transcript's contribution to a cross-transcript
// aggregation: its label-keyed rows plus the label-to-profile mapping in
// effect when the aggregation runs.
type TranscriptEntry struct {
	TranscriptID string
	Title        string
	CreatedAt    time.Time
	ByLabel      map[string]PerLabel
	// Mapping resolves session-scoped labels to profile IDs. Labels absent
	// from the mapping are unresolved.
	Mapping map[string]string
}

// TranscriptBreakdown is the per-transcript row of a profile's totals.
type TranscriptBreakdown struct {
	TranscriptID string    `json:"transcript_id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	Stats        PerLabel  `json:"stats"`
}

// GlobalStats are a profile's totals across every transcript it appears in.
type GlobalStats struct {
	ProfileID       string  `json:"profile_id"`
	TranscriptCount int     `json:"transcript_count"`
	SegmentCount    int     `json:"segment_count"`
	WordCount       int     `json:"word_count"`
	TotalSeconds    float64 `json:"total_seconds"`
	// UnresolvedLabels counts labels across the scanned transcripts that no
	// mapping resolves. Informational, never an error.
	UnresolvedLabels int                   `json:"unresolved_labels"`
	Transcripts      []TranscriptBreakdown `json:"transcripts"`
}

// AggregateForProfile folds each transcript's rows for profileID and sums
// the folded rows. Transcripts where the profile never speaks are skipped.
// The breakdown is ordered newest first.
func AggregateForProfile(profileID string, entries []TranscriptEntry) *GlobalStats {
	g := &GlobalStats{ProfileID: profileID}

	sorted := make([]TranscriptEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	for _, e := range sorted {
		var rows []PerLabel
		for label := range e.ByLabel {
			if _, ok := e.Mapping[label]; !ok {
				g.UnresolvedLabels++
			}
		}
		// Deterministic fold input order regardless of map iteration.
		labels := make([]string, 0, len(e.ByLabel))
		for label, pid := range e.Mapping {
			if pid != profileID {
				continue
			}
			if _, ok := e.ByLabel[label]; ok {
				labels = append(labels, label)
			}
		}
		sort.Strings(labels)
		for _, label := range labels {
			rows = append(rows, e.ByLabel[label])
		}
		if len(rows) == 0 {
			continue
		}

		folded := Fold(rows, TranscriptTotals(e.ByLabel))
		g.TranscriptCount++
		g.SegmentCount += folded.SegmentCount
		g.WordCount += folded.WordCount
		g.TotalSeconds += folded.TotalSeconds
		g.Transcripts = append(g.Transcripts, TranscriptBreakdown{
			TranscriptID: e.TranscriptID,
			Title:        e.Title,
			CreatedAt:    e.CreatedAt,
			Stats:        folded,
		})
	}
	return g
}

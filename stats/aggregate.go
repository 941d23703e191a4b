package stats

import (
	"sort"

	"github.com/debatelab/speakerkit/segment"
	"github.com/debatelab/speakerkit/util"
)

// AggregateTranscript computes per-label statistics from merged segments.
// Pure: no storage, no mapping lookups. Turn boundaries follow input
// order; the first/last speaker flags follow the timeline (minimum start,
// maximum end), so unsorted input is attributed correctly.
func AggregateTranscript(segments []segment.Merged) map[string]PerLabel {
	byLabel := make(map[string]PerLabel)
	if len(segments) == 0 {
		return byLabel
	}

	durations := make(map[string][]float64)
	for _, s := range segments {
		row := byLabel[s.Speaker]
		row.Label = s.Speaker
		d := s.Duration()
		row.TotalSeconds += d
		row.SegmentCount++
		row.WordCount += CountWords(s.Text)
		if d > row.LongestSegmentSeconds {
			row.LongestSegmentSeconds = d
		}
		if row.ShortestTalkSeconds == nil || d < *row.ShortestTalkSeconds {
			row.ShortestTalkSeconds = util.Ptr(d)
		}
		byLabel[s.Speaker] = row
		durations[s.Speaker] = append(durations[s.Speaker], d)
	}

	// Turns: maximal runs of consecutive segments with the same label.
	prev := ""
	for i, s := range segments {
		if i == 0 || s.Speaker != prev {
			row := byLabel[s.Speaker]
			row.TurnCount++
			byLabel[s.Speaker] = row
			prev = s.Speaker
		}
	}

	// First/last speaker by minimum start and maximum end across the whole
	// transcript. Strict comparisons break exact ties by input order.
	first, last := segments[0].Speaker, segments[0].Speaker
	minStart, maxEnd := segments[0].Start, segments[0].End
	for _, s := range segments[1:] {
		if s.Start < minStart {
			minStart, first = s.Start, s.Speaker
		}
		if s.End > maxEnd {
			maxEnd, last = s.End, s.Speaker
		}
	}
	totals := TranscriptTotals(byLabel)

	for label, row := range byLabel {
		row.IsFirstSpeaker = label == first
		row.IsLastSpeaker = label == last
		row.ShareSpeakingTime = ratio(row.TotalSeconds, totals.Seconds)
		row.ShareWords = ratio(float64(row.WordCount), float64(totals.Words))
		if row.TotalSeconds > 0 {
			row.WPM = util.Ptr(float64(row.WordCount) / (row.TotalSeconds / 60))
		}
		row.AvgSegmentSeconds = util.Ptr(row.TotalSeconds / float64(row.SegmentCount))
		row.MedianSegmentSeconds = util.Ptr(median(durations[label]))
		row.AvgTurnSeconds = util.Ptr(row.TotalSeconds / float64(row.TurnCount))
		row.AvgTurnSegments = util.Ptr(float64(row.SegmentCount) / float64(row.TurnCount))
		byLabel[label] = row
	}
	return byLabel
}

// ratio returns num/den, or nil when the denominator is zero. Shares are
// never NaN and never fabricated.
func ratio(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	return util.Ptr(num / den)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

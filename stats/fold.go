package stats

import "github.com/debatelab/speakerkit/util"

// Fold combines per-label rows that resolve to the same identity into a
// single row. totals are the transcript-wide denominators and stay
// unchanged, so the folded shares are the sums of the input shares.
//
// Folding one row returns it unchanged, bit for bit. Medians cannot be
// recomputed from folded rows, so the median is kept only for a single
// input and cleared otherwise.
func Fold(rows []PerLabel, totals Totals) PerLabel {
	if len(rows) == 0 {
		return PerLabel{}
	}
	if len(rows) == 1 {
		return rows[0]
	}

	out := PerLabel{Label: rows[0].Label}
	for _, r := range rows {
		out.TotalSeconds += r.TotalSeconds
		out.SegmentCount += r.SegmentCount
		out.WordCount += r.WordCount
		out.TurnCount += r.TurnCount
		out.IsFirstSpeaker = out.IsFirstSpeaker || r.IsFirstSpeaker
		out.IsLastSpeaker = out.IsLastSpeaker || r.IsLastSpeaker
		if r.LongestSegmentSeconds > out.LongestSegmentSeconds {
			out.LongestSegmentSeconds = r.LongestSegmentSeconds
		}
		if r.ShortestTalkSeconds != nil &&
			(out.ShortestTalkSeconds == nil || *r.ShortestTalkSeconds < *out.ShortestTalkSeconds) {
			out.ShortestTalkSeconds = util.Ptr(*r.ShortestTalkSeconds)
		}
	}

	out.ShareSpeakingTime = ratio(out.TotalSeconds, totals.Seconds)
	out.ShareWords = ratio(float64(out.WordCount), float64(totals.Words))
	if out.TotalSeconds > 0 {
		out.WPM = util.Ptr(float64(out.WordCount) / (out.TotalSeconds / 60))
	}
	if out.SegmentCount > 0 {
		out.AvgSegmentSeconds = util.Ptr(out.TotalSeconds / float64(out.SegmentCount))
	}
	if out.TurnCount > 0 {
		out.AvgTurnSeconds = util.Ptr(out.TotalSeconds / float64(out.TurnCount))
		out.AvgTurnSegments = util.Ptr(float64(out.SegmentCount) / float64(out.TurnCount))
	}
	return out
}

package stats

import "strings"

// PerLabel holds the statistics for one (transcript, speaker label) pair.
//
// Share and rate fields are pointers: nil means the value is undefined for
// this transcript (zero total time or words), never a fabricated zero.
// JSON names match the stats artifact column contract.
type PerLabel struct {
	// Label is the session-scoped speaker label these stats belong to.
	Label string `json:"speaker_id_in_transcript"`

	// Volume
	TotalSeconds float64 `json:"total_seconds"`
	SegmentCount int     `json:"segment_count"`
	WordCount    int     `json:"word_count"`

	// Relative share within the transcript
	ShareSpeakingTime *float64 `json:"share_speaking_time,omitempty"`
	ShareWords        *float64 `json:"share_words,omitempty"`

	// Position
	IsFirstSpeaker bool `json:"is_first_speaker"`
	IsLastSpeaker  bool `json:"is_last_speaker"`

	// Speaking rate and segment length
	WPM                  *float64 `json:"wpm,omitempty"`
	AvgSegmentSeconds    *float64 `json:"avg_segment_duration_sec,omitempty"`
	MedianSegmentSeconds *float64 `json:"median_segment_duration_sec,omitempty"`

	// Uninterrupted talks
	ShortestTalkSeconds   *float64 `json:"shortest_talk_sec,omitempty"`
	LongestSegmentSeconds float64  `json:"longest_talk_sec"`

	// Turn-taking: a turn is a maximal run of consecutive segments with
	// the same label.
	TurnCount       int      `json:"turn_count"`
	AvgTurnSeconds  *float64 `json:"avg_turn_length_sec,omitempty"`
	AvgTurnSegments *float64 `json:"avg_turn_length_segments,omitempty"`
}

// Totals are the transcript-wide denominators shares are computed against.
// They never change when rows are folded, per the fold policy.
type Totals struct {
	Seconds float64
	Words   int
}

// TranscriptTotals sums the denominators over all labels of one transcript.
func TranscriptTotals(byLabel map[string]PerLabel) Totals {
	var t Totals
	for _, row := range byLabel {
		t.Seconds += row.TotalSeconds
		t.Words += row.WordCount
	}
	return t
}

// CountWords tokenizes text on runs of whitespace, case-preserving, no
// stemming. Language-agnostic by construction.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

package segment

import "github.com/debatelab/speakerkit/errors"

// UnknownSpeaker is the sentinel label assigned to text segments no
// diarized segment overlaps. It is session-scoped like any other label and
// must never collide with real diarizer output.
const UnknownSpeaker = "SPEAKER_UNKNOWN"

// Transcribed is a segment of recognized speech.
type Transcribed struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds. End >= Start.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
	// Confidence is the recognizer's confidence in [0,1], if it supplied one.
	Confidence *float64 `json:"confidence,omitempty"`
}

// Diarized is a segment attributed to one speaker by the diarizer.
type Diarized struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds. End >= Start.
	End float64 `json:"end"`
	// Speaker is the session-scoped speaker label (e.g. "SPEAKER_00").
	// It carries no meaning outside the transcript it came from.
	Speaker string `json:"speaker"`
}

// Merged is a transcribed segment with speaker attribution. Values are
// immutable once produced by the Merger.
type Merged struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
	// Speaker is the label judged most responsible for this interval,
	// or UnknownSpeaker when nothing overlapped.
	Speaker string `json:"speaker"`
	// Confidence is passed through from the recognizer, never fabricated.
	Confidence *float64 `json:"confidence,omitempty"`
}

// Duration returns the segment length in seconds.
func (m Merged) Duration() float64 { return m.End - m.Start }

// NewTranscribed creates a validated Transcribed segment.
func NewTranscribed(start, end float64, text string) (Transcribed, error) {
	if err := validateTiming(0, start, end); err != nil {
		return Transcribed{}, err
	}
	return Transcribed{Start: start, End: end, Text: text}, nil
}

// NewDiarized creates a validated Diarized segment.
func NewDiarized(start, end float64, speaker string) (Diarized, error) {
	if err := validateTiming(0, start, end); err != nil {
		return Diarized{}, err
	}
	if speaker == "" {
		speaker = UnknownSpeaker
	}
	return Diarized{Start: start, End: end, Speaker: speaker}, nil
}

// validateTiming rejects negative or inverted timings. The index is
// reported in the error so callers can identify the offending segment.
func validateTiming(index int, start, end float64) error {
	if start < 0 {
		return errors.InvalidSegment(index, start, end, "start must be non-negative")
	}
	if end < start {
		return errors.InvalidSegment(index, start, end, "end must not precede start")
	}
	return nil
}

// Overlap returns the overlap duration in seconds of the two intervals
// [start1, end1) and [start2, end2), or 0 when they do not intersect.
func Overlap(start1, end1, start2, end2 float64) float64 {
	overlapStart := max(start1, start2)
	overlapEnd := min(end1, end2)
	if overlapStart < overlapEnd {
		return overlapEnd - overlapStart
	}
	return 0
}

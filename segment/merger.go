package segment

import "math"

// Merger combines transcribed segments with diarized speaker segments
// based on temporal overlap.
//
// Merging is deterministic and pure: the same inputs always produce the
// same output, input order of the text segments is preserved, and neither
// input is assumed to be sorted.
type Merger struct{}

// NewMerger creates a Merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Attribution records how a speaker was chosen for one text segment.
// It is advisory diagnostic output; the Merged values alone carry the
// result.
type Attribution struct {
	// Index is the position of the segment in the text input.
	Index int
	// Speaker is the winning label, or UnknownSpeaker.
	Speaker string
	// OverlapSeconds is the total overlap accumulated by the winning
	// label across all its diarized segments.
	OverlapSeconds float64
	// Coverage is OverlapSeconds relative to the segment duration,
	// 0 for zero-length segments.
	Coverage float64
}

// Merge assigns each transcribed segment the speaker label whose diarized
// segments overlap it the most, accumulating overlap per label before
// comparing. Text segments nothing overlaps get UnknownSpeaker. Returns an
// INVALID_SEGMENT error when any input segment has malformed timing.
func (m *Merger) Merge(text []Transcribed, speakers []Diarized) ([]Merged, error) {
	merged, _, err := m.MergeWithReport(text, speakers)
	return merged, err
}

// MergeWithReport is Merge plus a per-segment attribution report.
func (m *Merger) MergeWithReport(text []Transcribed, speakers []Diarized) ([]Merged, []Attribution, error) {
	for i, t := range text {
		if err := validateTiming(i, t.Start, t.End); err != nil {
			return nil, nil, err
		}
	}
	for i, d := range speakers {
		if err := validateTiming(i, d.Start, d.End); err != nil {
			return nil, nil, err
		}
	}

	merged := make([]Merged, 0, len(text))
	report := make([]Attribution, 0, len(text))

	for i, t := range text {
		speaker, overlap := findSpeaker(t, speakers)

		coverage := 0.0
		if dur := t.End - t.Start; dur > 0 && speaker != UnknownSpeaker {
			coverage = overlap / dur
		}

		merged = append(merged, Merged{
			Start:      t.Start,
			End:        t.End,
			Text:       t.Text,
			Speaker:    speaker,
			Confidence: t.Confidence,
		})
		report = append(report, Attribution{
			Index:          i,
			Speaker:        speaker,
			OverlapSeconds: overlap,
			Coverage:       coverage,
		})
	}

	return merged, report, nil
}

// candidate accumulates one label's claim on a text segment.
type candidate struct {
	total     float64 // summed overlap seconds (or containment count for points)
	startDist float64 // min |d.Start - t.Start| among contributing segments
	earliest  float64 // earliest contributing d.Start
	order     int     // first contributing index, final fallback
}

// findSpeaker picks the label with the greatest accumulated overlap.
// Exact ties go to the label whose contributing segment starts closest to
// the text segment's start, then to the earliest-starting one. Zero-length
// text segments are attributed by point containment at their start.
func findSpeaker(t Transcribed, speakers []Diarized) (string, float64) {
	candidates := make(map[string]*candidate)
	pointwise := t.End == t.Start

	for i, d := range speakers {
		var claim float64
		if pointwise {
			if d.Start <= t.Start && t.Start < d.End {
				claim = 1
			}
		} else {
			claim = Overlap(t.Start, t.End, d.Start, d.End)
		}
		if claim <= 0 {
			continue
		}

		dist := math.Abs(d.Start - t.Start)
		c, ok := candidates[d.Speaker]
		if !ok {
			candidates[d.Speaker] = &candidate{total: claim, startDist: dist, earliest: d.Start, order: i}
			continue
		}
		c.total += claim
		if dist < c.startDist {
			c.startDist = dist
		}
		if d.Start < c.earliest {
			c.earliest = d.Start
		}
	}

	if len(candidates) == 0 {
		return UnknownSpeaker, 0
	}

	var best string
	var bestC *candidate
	for label, c := range candidates {
		if bestC == nil || wins(c, bestC) {
			best, bestC = label, c
		}
	}
	if pointwise {
		return best, 0
	}
	return best, bestC.total
}

// wins reports whether candidate c beats the current best.
// Tie-break order: greater total overlap, then start closest to the text
// segment, then earliest start, then first appearance in the diarized
// input. The closest/earliest rules are a documented policy choice, not a
// property of the inputs.
func wins(c, best *candidate) bool {
	if c.total != best.total {
		return c.total > best.total
	}
	if c.startDist != best.startDist {
		return c.startDist < best.startDist
	}
	if c.earliest != best.earliest {
		return c.earliest < best.earliest
	}
	return c.order < best.order
}

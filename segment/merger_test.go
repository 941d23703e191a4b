package segment

import (
	"reflect"
	"testing"

	"github.com/debatelab/speakerkit/errors"
)

func TestMerge_MaxOverlapWins(t *testing.T) {
	// "Hello and welcome" spans 0-3.5s. SPEAKER_00 overlaps 2.0s,
	// SPEAKER_01 overlaps 1.5s, so SPEAKER_00 wins.
	text := []Transcribed{{Start: 0, End: 3.5, Text: "Hello and welcome"}}
	speakers := []Diarized{
		{Start: 0, End: 2, Speaker: "SPEAKER_00"},
		{Start: 2, End: 5, Speaker: "SPEAKER_01"},
	}

	merged, report, err := NewMerger().MergeWithReport(text, speakers)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged segment, got %d", len(merged))
	}
	if merged[0].Speaker != "SPEAKER_00" {
		t.Errorf("expected SPEAKER_00, got %s", merged[0].Speaker)
	}
	if report[0].OverlapSeconds != 2.0 {
		t.Errorf("expected winning overlap 2.0, got %v", report[0].OverlapSeconds)
	}
}

func TestMerge_OverlapAccumulatesPerLabel(t *testing.T) {
	// SPEAKER_00 holds two short turns (0.8s + 0.8s = 1.6s) against
	// SPEAKER_01's single 1.0s turn. Accumulation must happen before
	// comparison.
	text := []Transcribed{{Start: 0, End: 3, Text: "split attribution"}}
	speakers := []Diarized{
		{Start: 0, End: 0.8, Speaker: "SPEAKER_00"},
		{Start: 0.8, End: 1.8, Speaker: "SPEAKER_01"},
		{Start: 1.8, End: 2.6, Speaker: "SPEAKER_00"},
	}

	merged, err := NewMerger().Merge(text, speakers)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if merged[0].Speaker != "SPEAKER_00" {
		t.Errorf("expected accumulated SPEAKER_00 win, got %s", merged[0].Speaker)
	}
}

func TestMerge_TieBreakClosestStart(t *testing.T) {
	// Both labels overlap exactly 1s; SPEAKER_01 starts at the text
	// segment's own start and must win the tie.
	text := []Transcribed{{Start: 1, End: 3, Text: "tie"}}
	speakers := []Diarized{
		{Start: 2, End: 3, Speaker: "SPEAKER_00"},
		{Start: 1, End: 2, Speaker: "SPEAKER_01"},
	}

	merged, err := NewMerger().Merge(text, speakers)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if merged[0].Speaker != "SPEAKER_01" {
		t.Errorf("expected closest-start tie-break to pick SPEAKER_01, got %s", merged[0].Speaker)
	}
}

func TestMerge_NoOverlapFallsBackToUnknown(t *testing.T) {
	text := []Transcribed{
		{Start: 0, End: 1, Text: "one"},
		{Start: 1, End: 2, Text: "two"},
	}

	merged, err := NewMerger().Merge(text, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	for i, m := range merged {
		if m.Speaker != UnknownSpeaker {
			t.Errorf("segment %d: expected %s, got %s", i, UnknownSpeaker, m.Speaker)
		}
	}
}

func TestMerge_PreservesTextAndOrder(t *testing.T) {
	text := []Transcribed{
		{Start: 5, End: 6, Text: "later but first in input"},
		{Start: 0, End: 1, Text: "earlier but second"},
	}
	speakers := []Diarized{{Start: 0, End: 10, Speaker: "SPEAKER_00"}}

	merged, err := NewMerger().Merge(text, speakers)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(merged) != len(text) {
		t.Fatalf("expected %d segments, got %d", len(text), len(merged))
	}
	for i := range text {
		if merged[i].Start != text[i].Start || merged[i].End != text[i].End || merged[i].Text != text[i].Text {
			t.Errorf("segment %d: timing/text not preserved: %+v vs %+v", i, merged[i], text[i])
		}
	}
}

func TestMerge_Deterministic(t *testing.T) {
	text := []Transcribed{
		{Start: 0, End: 2, Text: "a"},
		{Start: 2, End: 4, Text: "b"},
		{Start: 4, End: 4, Text: ""},
	}
	speakers := []Diarized{
		{Start: 0, End: 1, Speaker: "SPEAKER_00"},
		{Start: 1, End: 2, Speaker: "SPEAKER_01"},
		{Start: 2, End: 6, Speaker: "SPEAKER_02"},
	}

	m := NewMerger()
	first, err := m.Merge(text, speakers)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	for range 10 {
		again, err := m.Merge(text, speakers)
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("merge not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestMerge_ZeroLengthSegmentUsesPointContainment(t *testing.T) {
	text := []Transcribed{{Start: 2.5, End: 2.5, Text: ""}}
	speakers := []Diarized{
		{Start: 0, End: 2, Speaker: "SPEAKER_00"},
		{Start: 2, End: 4, Speaker: "SPEAKER_01"},
	}

	merged, err := NewMerger().Merge(text, speakers)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if merged[0].Speaker != "SPEAKER_01" {
		t.Errorf("expected point containment to pick SPEAKER_01, got %s", merged[0].Speaker)
	}
}

func TestMerge_ConfidencePassesThrough(t *testing.T) {
	conf := 0.87
	text := []Transcribed{
		{Start: 0, End: 1, Text: "with", Confidence: &conf},
		{Start: 1, End: 2, Text: "without"},
	}
	speakers := []Diarized{{Start: 0, End: 2, Speaker: "SPEAKER_00"}}

	merged, err := NewMerger().Merge(text, speakers)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if merged[0].Confidence == nil || *merged[0].Confidence != conf {
		t.Errorf("expected confidence %v passed through, got %v", conf, merged[0].Confidence)
	}
	if merged[1].Confidence != nil {
		t.Errorf("expected absent confidence to stay absent, got %v", *merged[1].Confidence)
	}
}

func TestMerge_UnsortedInputsTolerated(t *testing.T) {
	text := []Transcribed{{Start: 0, End: 3, Text: "x"}}
	speakers := []Diarized{
		{Start: 2, End: 3, Speaker: "SPEAKER_01"},
		{Start: 0, End: 2, Speaker: "SPEAKER_00"},
	}

	merged, err := NewMerger().Merge(text, speakers)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if merged[0].Speaker != "SPEAKER_00" {
		t.Errorf("expected SPEAKER_00 regardless of input order, got %s", merged[0].Speaker)
	}
}

func TestMerge_InvalidTextSegment(t *testing.T) {
	text := []Transcribed{
		{Start: 0, End: 1, Text: "fine"},
		{Start: 5, End: 2, Text: "inverted"},
	}

	_, err := NewMerger().Merge(text, nil)
	if err == nil {
		t.Fatal("expected error for inverted timing")
	}
	if !errors.IsCode(err, errors.CodeInvalidSegment) {
		t.Errorf("expected INVALID_SEGMENT, got %v", errors.CodeOf(err))
	}
	var appErr *errors.Error
	if !errAs(err, &appErr) {
		t.Fatal("expected *errors.Error")
	}
	if appErr.Details["index"] != 1 {
		t.Errorf("expected offending index 1, got %v", appErr.Details["index"])
	}
}

func TestMerge_InvalidDiarizedSegment(t *testing.T) {
	text := []Transcribed{{Start: 0, End: 1, Text: "fine"}}
	speakers := []Diarized{{Start: -1, End: 1, Speaker: "SPEAKER_00"}}

	_, err := NewMerger().Merge(text, speakers)
	if !errors.IsCode(err, errors.CodeInvalidSegment) {
		t.Errorf("expected INVALID_SEGMENT, got %v", err)
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 float64
		want                       float64
	}{
		{"full", 1, 3, 0, 5, 2},
		{"partial", 0, 3.5, 2, 5, 1.5},
		{"none", 0, 1, 2, 3, 0},
		{"touching", 0, 2, 2, 4, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlap(tc.start1, tc.end1, tc.start2, tc.end2); got != tc.want {
				t.Errorf("Overlap() = %v, want %v", got, tc.want)
			}
		})
	}
}

func errAs(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}

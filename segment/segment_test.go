package segment

import (
	"testing"

	"github.com/debatelab/speakerkit/errors"
)

func TestNewTranscribed(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		wantErr    bool
	}{
		{"valid", 0, 3.5, false},
		{"zero length", 2, 2, false},
		{"inverted", 3, 1, true},
		{"negative start", -0.5, 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTranscribed(tc.start, tc.end, "text")
			if (err != nil) != tc.wantErr {
				t.Errorf("NewTranscribed(%v, %v) error = %v, wantErr %v", tc.start, tc.end, err, tc.wantErr)
			}
			if err != nil && !errors.IsCode(err, errors.CodeInvalidSegment) {
				t.Errorf("expected INVALID_SEGMENT, got %v", errors.CodeOf(err))
			}
		})
	}
}

func TestNewDiarized_EmptySpeakerDefaultsToUnknown(t *testing.T) {
	d, err := NewDiarized(0, 1, "")
	if err != nil {
		t.Fatalf("NewDiarized() error = %v", err)
	}
	if d.Speaker != UnknownSpeaker {
		t.Errorf("expected %s, got %s", UnknownSpeaker, d.Speaker)
	}
}

func TestMergedDuration(t *testing.T) {
	m := Merged{Start: 1.5, End: 4}
	if m.Duration() != 2.5 {
		t.Errorf("Duration() = %v, want 2.5", m.Duration())
	}
}

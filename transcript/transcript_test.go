package transcript

import (
	"encoding/json"
	"testing"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/segment"
)

func TestParsePayload(t *testing.T) {
	data := []byte(`{
		"duration": 42.5,
		"speakers_count": 2,
		"transcription": [
			{"start": 0, "end": 3.5, "text": "Hello and welcome", "speaker": "SPEAKER_00", "confidence": 0.9},
			{"start": 3.5, "end": 6, "text": "thanks", "speaker": "SPEAKER_01"}
		]
	}`)

	p, err := ParsePayload(data)
	if err != nil {
		t.Fatalf("ParsePayload() error = %v", err)
	}
	if p.Duration != 42.5 {
		t.Errorf("expected duration 42.5, got %v", p.Duration)
	}
	if len(p.Transcription) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(p.Transcription))
	}
	if p.Transcription[0].Confidence == nil || *p.Transcription[0].Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", p.Transcription[0].Confidence)
	}
	if p.Transcription[1].Confidence != nil {
		t.Error("expected absent confidence to stay absent")
	}
}

func TestParsePayload_MissingSpeakerGetsSentinel(t *testing.T) {
	data := []byte(`{"duration": 1, "transcription": [{"start": 0, "end": 1, "text": "x"}]}`)

	p, err := ParsePayload(data)
	if err != nil {
		t.Fatalf("ParsePayload() error = %v", err)
	}
	if p.Transcription[0].Speaker != segment.UnknownSpeaker {
		t.Errorf("expected %s, got %s", segment.UnknownSpeaker, p.Transcription[0].Speaker)
	}
}

func TestParsePayload_InvalidTiming(t *testing.T) {
	data := []byte(`{"transcription": [{"start": 5, "end": 2, "text": "inverted", "speaker": "SPEAKER_00"}]}`)

	_, err := ParsePayload(data)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.CodeInvalidPayload) {
		t.Errorf("expected INVALID_PAYLOAD, got %v", errors.CodeOf(err))
	}
	// the cause identifies the offending segment
	if !errors.IsCode(err, errors.CodeInvalidSegment) {
		t.Error("expected INVALID_SEGMENT cause to be reachable via errors chain")
	}
}

func TestParsePayload_NegativeDuration(t *testing.T) {
	data := []byte(`{"duration": -3, "transcription": []}`)

	_, err := ParsePayload(data)
	if !errors.IsCode(err, errors.CodeInvalidPayload) {
		t.Errorf("expected INVALID_PAYLOAD, got %v", err)
	}
}

func TestParsePayload_MalformedJSON(t *testing.T) {
	_, err := ParsePayload([]byte(`{not json`))
	if !errors.IsCode(err, errors.CodeInvalidPayload) {
		t.Errorf("expected INVALID_PAYLOAD, got %v", err)
	}
}

func TestPayload_RoundTrip(t *testing.T) {
	conf := 0.75
	original := &Payload{
		Duration:      10,
		SpeakersCount: 1,
		Transcription: []PayloadSegment{
			{Start: 0, End: 10, Text: "round trip", Speaker: "SPEAKER_00", Confidence: &conf},
		},
	}

	data, err := original.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	parsed, err := ParsePayload(data)
	if err != nil {
		t.Fatalf("ParsePayload() error = %v", err)
	}
	if parsed.Duration != original.Duration || parsed.SpeakersCount != original.SpeakersCount {
		t.Errorf("metadata not preserved: %+v", parsed)
	}
	if len(parsed.Transcription) != 1 || parsed.Transcription[0] != original.Transcription[0] {
		// PayloadSegment contains a pointer; compare the pointed-to value
		got := parsed.Transcription[0]
		want := original.Transcription[0]
		if got.Start != want.Start || got.End != want.End || got.Text != want.Text ||
			got.Speaker != want.Speaker || got.Confidence == nil || *got.Confidence != *want.Confidence {
			t.Errorf("segment not preserved: %+v vs %+v", got, want)
		}
	}
}

func TestPayload_Transcript(t *testing.T) {
	p := &Payload{
		Duration: 5,
		Transcription: []PayloadSegment{
			{Start: 0, End: 2, Text: "a", Speaker: "SPEAKER_00"},
			{Start: 2, End: 5, Text: "b", Speaker: "SPEAKER_01"},
			{Start: 5, End: 5, Text: "", Speaker: "SPEAKER_00"},
		},
	}

	tr := p.Transcript("debate-night", "file:///tmp/debate-night_transcription.json")
	if tr.ID == "" {
		t.Error("expected generated ID")
	}
	if tr.SpeakersCount != 2 {
		t.Errorf("expected 2 distinct speakers, got %d", tr.SpeakersCount)
	}
	if len(tr.Segments) != 3 {
		t.Errorf("expected 3 segments, got %d", len(tr.Segments))
	}
}

func TestPayload_ModelMetadataIsOpaque(t *testing.T) {
	data := []byte(`{"duration": 1, "model": {"name": "large-v3", "beam_size": 5}, "transcription": []}`)

	p, err := ParsePayload(data)
	if err != nil {
		t.Fatalf("ParsePayload() error = %v", err)
	}
	var model map[string]any
	if err := json.Unmarshal(p.Model, &model); err != nil {
		t.Fatalf("expected model preserved as raw JSON: %v", err)
	}
	if model["name"] != "large-v3" {
		t.Errorf("expected model name preserved, got %v", model)
	}
}

func TestTitleFromURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"s3 payload", "s3://bucket/jobs/1/debate_transcription.json", "debate"},
		{"plain path", "/data/transcripts/town-hall_transcription.json", "town-hall"},
		{"no suffix", "s3://bucket/other.json", "other.json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TitleFromURI(tc.uri); got != tc.want {
				t.Errorf("TitleFromURI(%q) = %q, want %q", tc.uri, got, tc.want)
			}
		})
	}
}

func TestCountSpeakers_CountsUnknownAsDistinctLabel(t *testing.T) {
	segments := []segment.Merged{
		{Start: 0, End: 1, Speaker: "SPEAKER_00"},
		{Start: 1, End: 2, Speaker: segment.UnknownSpeaker},
	}
	if got := CountSpeakers(segments); got != 2 {
		t.Errorf("CountSpeakers() = %d, want 2", got)
	}
}

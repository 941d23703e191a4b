package transcript

import (
	"encoding/json"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/segment"
	"github.com/debatelab/speakerkit/validation"
)

// PayloadSuffix is the conventional file name suffix for transcript
// payloads; the stats artifact for a payload shares its stem.
const PayloadSuffix = "_transcription.json"

// Payload is the transcript JSON contract produced by the recognition
// pipeline and round-tripped through storage.
type Payload struct {
	// Duration is the source media duration in seconds.
	Duration float64 `json:"duration" validate:"min=0"`
	// SpeakersCount is the recognizer-reported distinct speaker count.
	// Recomputed from the segments when zero.
	SpeakersCount int `json:"speakers_count" validate:"min=0"`
	// VideoPath optionally points at the source media.
	VideoPath string `json:"video_path,omitempty"`
	// Model optionally carries recognizer model metadata, opaque here.
	Model json.RawMessage `json:"model,omitempty"`
	// ProcessingTime is the recognizer's wall-clock seconds, if reported.
	ProcessingTime float64 `json:"processing_time,omitempty"`
	// Transcription is the ordered list of speaker-labeled segments.
	Transcription []PayloadSegment `json:"transcription"`
}

// PayloadSegment is one segment row in the payload.
type PayloadSegment struct {
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Text       string   `json:"text"`
	Speaker    string   `json:"speaker"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ParsePayload decodes and validates a transcript payload. Segments with
// malformed timing are rejected; segments with no speaker get the unknown
// sentinel rather than being dropped.
func ParsePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.InvalidPayload("malformed JSON", err)
	}
	if err := validation.Validate(&p); err != nil {
		return nil, errors.InvalidPayload("invalid metadata", err)
	}
	for i, s := range p.Transcription {
		if s.Start < 0 || s.End < s.Start {
			return nil, errors.InvalidPayload("malformed segment timing",
				errors.InvalidSegment(i, s.Start, s.End, "end must not precede start"))
		}
		if s.Speaker == "" {
			p.Transcription[i].Speaker = segment.UnknownSpeaker
		}
	}
	return &p, nil
}

// Encode serializes the payload to indented JSON.
func (p *Payload) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, errors.Internal(err)
	}
	return data, nil
}

// Segments converts the payload rows to merged segments.
func (p *Payload) Segments() []segment.Merged {
	segments := make([]segment.Merged, 0, len(p.Transcription))
	for _, s := range p.Transcription {
		segments = append(segments, segment.Merged{
			Start:      s.Start,
			End:        s.End,
			Text:       s.Text,
			Speaker:    s.Speaker,
			Confidence: s.Confidence,
		})
	}
	return segments
}

// Transcript builds a Transcript entity from the payload. SpeakersCount
// falls back to the distinct labels present when the payload omits it.
func (p *Payload) Transcript(title, sourceURI string) *Transcript {
	t := New(title, sourceURI, p.Duration, p.Segments())
	if p.SpeakersCount > 0 {
		t.SpeakersCount = p.SpeakersCount
	}
	return t
}

// FromTranscript builds the wire payload for a transcript.
func FromTranscript(t *Transcript) *Payload {
	rows := make([]PayloadSegment, 0, len(t.Segments))
	for _, s := range t.Segments {
		rows = append(rows, PayloadSegment{
			Start:      s.Start,
			End:        s.End,
			Text:       s.Text,
			Speaker:    s.Speaker,
			Confidence: s.Confidence,
		})
	}
	return &Payload{
		Duration:      t.Duration,
		SpeakersCount: t.SpeakersCount,
		Transcription: rows,
	}
}

package transcript

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/debatelab/speakerkit/segment"
	"github.com/debatelab/speakerkit/util"
)

// Transcript is a named collection of merged segments plus metadata.
// Immutable after construction.
type Transcript struct {
	// ID is the durable transcript identifier.
	ID string `json:"id"`
	// Title is a human-readable name, derived from the source when absent.
	Title string `json:"title"`
	// SourceURI is where the transcript payload was loaded from.
	SourceURI string `json:"source_uri,omitempty"`
	// Duration is the source media duration in seconds.
	Duration float64 `json:"duration"`
	// SpeakersCount is the number of distinct speaker labels, the unknown
	// sentinel included so no speaking time is silently lost.
	SpeakersCount int `json:"speakers_count"`
	// CreatedAt is when this transcript was produced.
	CreatedAt time.Time `json:"created_at"`
	// Segments are the merged, speaker-labeled segments in input order.
	Segments []segment.Merged `json:"segments"`
}

// New creates a Transcript with a fresh ID. SpeakersCount is computed from
// the distinct labels present in the segments.
func New(title, sourceURI string, duration float64, segments []segment.Merged) *Transcript {
	return &Transcript{
		ID:            uuid.NewString(),
		Title:         title,
		SourceURI:     sourceURI,
		Duration:      duration,
		SpeakersCount: CountSpeakers(segments),
		CreatedAt:     time.Now().UTC(),
		Segments:      segments,
	}
}

// CountSpeakers returns the number of distinct speaker labels in segments.
func CountSpeakers(segments []segment.Merged) int {
	labels := util.Map(segments, func(s segment.Merged) string { return s.Speaker })
	return len(util.Unique(labels))
}

// TitleFromURI derives a display title from a source location: the base
// name with the transcription-payload suffix stripped.
func TitleFromURI(uri string) string {
	base := uri
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, PayloadSuffix)
}

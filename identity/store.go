package identity

import (
	"context"
	"sync"
	"time"

	"github.com/debatelab/speakerkit/errors"
)

// Mapping links one session-scoped speaker label to a profile.
type Mapping struct {
	TranscriptID string    `json:"transcript_id"`
	SpeakerLabel string    `json:"speaker_label"`
	ProfileID    string    `json:"profile_id"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store persists label-to-profile mappings.
//
// SetMapping with an empty profileID clears the mapping. Upserts are
// idempotent: re-asserting an existing mapping is not an error.
type Store interface {
	// Resolve returns the profile mapped to the label, or NOT_FOUND.
	Resolve(ctx context.Context, transcriptID, speakerLabel string) (string, error)
	// SetMapping upserts or, with an empty profileID, clears a mapping.
	SetMapping(ctx context.Context, transcriptID, speakerLabel, profileID string) error
	// MappingsForTranscript returns the label-to-profile map for one transcript.
	MappingsForTranscript(ctx context.Context, transcriptID string) (map[string]string, error)
	// MappingsForProfile returns every mapping that resolves to the profile.
	MappingsForProfile(ctx context.Context, profileID string) ([]Mapping, error)
}

type mappingKey struct {
	transcriptID string
	label        string
}

// MemoryStore is an in-process Store, safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	mappings map[mappingKey]Mapping
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mappings: make(map[mappingKey]Mapping)}
}

func (s *MemoryStore) Resolve(_ context.Context, transcriptID, speakerLabel string) (string, error) {
	if transcriptID == "" {
		return "", errors.MissingField("transcript_id")
	}
	if speakerLabel == "" {
		return "", errors.MissingField("speaker_label")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mappings[mappingKey{transcriptID, speakerLabel}]
	if !ok {
		return "", errors.NotFound("mapping", transcriptID+"/"+speakerLabel)
	}
	return m.ProfileID, nil
}

func (s *MemoryStore) SetMapping(_ context.Context, transcriptID, speakerLabel, profileID string) error {
	if transcriptID == "" {
		return errors.MissingField("transcript_id")
	}
	if speakerLabel == "" {
		return errors.MissingField("speaker_label")
	}

	key := mappingKey{transcriptID, speakerLabel}
	s.mu.Lock()
	defer s.mu.Unlock()
	if profileID == "" {
		delete(s.mappings, key)
		return nil
	}
	s.mappings[key] = Mapping{
		TranscriptID: transcriptID,
		SpeakerLabel: speakerLabel,
		ProfileID:    profileID,
		UpdatedAt:    time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) MappingsForTranscript(_ context.Context, transcriptID string) (map[string]string, error) {
	if transcriptID == "" {
		return nil, errors.MissingField("transcript_id")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string)
	for key, m := range s.mappings {
		if key.transcriptID == transcriptID {
			out[key.label] = m.ProfileID
		}
	}
	return out, nil
}

func (s *MemoryStore) MappingsForProfile(_ context.Context, profileID string) ([]Mapping, error) {
	if profileID == "" {
		return nil, errors.MissingField("profile_id")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Mapping
	for _, m := range s.mappings {
		if m.ProfileID == profileID {
			out = append(out, m)
		}
	}
	return out, nil
}

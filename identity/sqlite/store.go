// Package sqlite provides a SQLite-backed identity mapping store.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/identity"
)

const schema = `
CREATE TABLE IF NOT EXISTS speaker_mapping (
	transcript_id TEXT NOT NULL,
	speaker_label TEXT NOT NULL,
	profile_id    TEXT NOT NULL,
	updated_at    TIMESTAMP NOT NULL,
	PRIMARY KEY (transcript_id, speaker_label)
);
CREATE INDEX IF NOT EXISTS idx_speaker_mapping_profile ON speaker_mapping (profile_id);
`

// Store persists identity mappings in a SQLite database.
type Store struct {
	db *sql.DB
}

var _ identity.Store = (*Store)(nil)

func init() {
	identity.RegisterFactory("sqlite", func(path string) (identity.Store, error) {
		return Open(path)
	})
}

// Open opens (creating if needed) the database at path and ensures the
// mapping schema exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.MissingField("path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Internal(err)
	}
	// modernc's driver is not safe for concurrent writes on one connection
	// pool without serialization.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Internal(err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Resolve(ctx context.Context, transcriptID, speakerLabel string) (string, error) {
	if transcriptID == "" {
		return "", errors.MissingField("transcript_id")
	}
	if speakerLabel == "" {
		return "", errors.MissingField("speaker_label")
	}

	var profileID string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_id FROM speaker_mapping WHERE transcript_id = ? AND speaker_label = ?`,
		transcriptID, speakerLabel,
	).Scan(&profileID)
	if err == sql.ErrNoRows {
		return "", errors.NotFound("mapping", transcriptID+"/"+speakerLabel)
	}
	if err != nil {
		return "", errors.Internal(err)
	}
	return profileID, nil
}

func (s *Store) SetMapping(ctx context.Context, transcriptID, speakerLabel, profileID string) error {
	if transcriptID == "" {
		return errors.MissingField("transcript_id")
	}
	if speakerLabel == "" {
		return errors.MissingField("speaker_label")
	}

	if profileID == "" {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM speaker_mapping WHERE transcript_id = ? AND speaker_label = ?`,
			transcriptID, speakerLabel)
		if err != nil {
			return errors.Internal(err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO speaker_mapping (transcript_id, speaker_label, profile_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (transcript_id, speaker_label)
		DO UPDATE SET profile_id = excluded.profile_id, updated_at = excluded.updated_at`,
		transcriptID, speakerLabel, profileID, time.Now().UTC())
	if err != nil {
		return errors.Internal(err)
	}
	return nil
}

func (s *Store) MappingsForTranscript(ctx context.Context, transcriptID string) (map[string]string, error) {
	if transcriptID == "" {
		return nil, errors.MissingField("transcript_id")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT speaker_label, profile_id FROM speaker_mapping WHERE transcript_id = ?`,
		transcriptID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var label, profileID string
		if err := rows.Scan(&label, &profileID); err != nil {
			return nil, errors.Internal(err)
		}
		out[label] = profileID
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal(err)
	}
	return out, nil
}

func (s *Store) MappingsForProfile(ctx context.Context, profileID string) ([]identity.Mapping, error) {
	if profileID == "" {
		return nil, errors.MissingField("profile_id")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT transcript_id, speaker_label, profile_id, updated_at
		FROM speaker_mapping WHERE profile_id = ?
		ORDER BY updated_at DESC`, profileID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	defer rows.Close()

	var out []identity.Mapping
	for rows.Next() {
		var m identity.Mapping
		if err := rows.Scan(&m.TranscriptID, &m.SpeakerLabel, &m.ProfileID, &m.UpdatedAt); err != nil {
			return nil, errors.Internal(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal(err)
	}
	return out, nil
}

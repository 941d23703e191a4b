// Package artifact reads and writes per-transcript speaker stats artifacts.
//
// The artifact is a Parquet file colocated with its source payload: for
// <stem>_transcription.json the stats land in <stem>_speaker_stats.parquet,
// one row per speaker label. Optional statistics map to optional columns,
// so an undefined value stays null instead of becoming a fake zero.
package artifact

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/stats"
	"github.com/debatelab/speakerkit/storage"
	"github.com/debatelab/speakerkit/transcript"
	"github.com/debatelab/speakerkit/util"
)

// StatsSuffix is the artifact file name suffix, sharing the payload's stem.
const StatsSuffix = "_speaker_stats.parquet"

type statsRow struct {
	Label                 string   `parquet:"speaker_id_in_transcript"`
	TotalSeconds          float64  `parquet:"total_seconds"`
	SegmentCount          int32    `parquet:"segment_count"`
	WordCount             int32    `parquet:"word_count"`
	ShareSpeakingTime     *float64 `parquet:"share_speaking_time,optional"`
	ShareWords            *float64 `parquet:"share_words,optional"`
	IsFirstSpeaker        bool     `parquet:"is_first_speaker"`
	IsLastSpeaker         bool     `parquet:"is_last_speaker"`
	WPM                   *float64 `parquet:"wpm,optional"`
	AvgSegmentSeconds     *float64 `parquet:"avg_segment_duration_sec,optional"`
	MedianSegmentSeconds  *float64 `parquet:"median_segment_duration_sec,optional"`
	ShortestTalkSeconds   *float64 `parquet:"shortest_talk_sec,optional"`
	LongestSegmentSeconds float64  `parquet:"longest_talk_sec"`
	TurnCount             int32    `parquet:"turn_count"`
	AvgTurnSeconds        *float64 `parquet:"avg_turn_length_sec,optional"`
	AvgTurnSegments       *float64 `parquet:"avg_turn_length_segments,optional"`
}

func toRow(r stats.PerLabel) statsRow {
	return statsRow{
		Label:                 r.Label,
		TotalSeconds:          r.TotalSeconds,
		SegmentCount:          int32(r.SegmentCount),
		WordCount:             int32(r.WordCount),
		ShareSpeakingTime:     r.ShareSpeakingTime,
		ShareWords:            r.ShareWords,
		IsFirstSpeaker:        r.IsFirstSpeaker,
		IsLastSpeaker:         r.IsLastSpeaker,
		WPM:                   r.WPM,
		AvgSegmentSeconds:     r.AvgSegmentSeconds,
		MedianSegmentSeconds:  r.MedianSegmentSeconds,
		ShortestTalkSeconds:   r.ShortestTalkSeconds,
		LongestSegmentSeconds: r.LongestSegmentSeconds,
		TurnCount:             int32(r.TurnCount),
		AvgTurnSeconds:        r.AvgTurnSeconds,
		AvgTurnSegments:       r.AvgTurnSegments,
	}
}

func fromRow(r statsRow) stats.PerLabel {
	return stats.PerLabel{
		Label:                 r.Label,
		TotalSeconds:          r.TotalSeconds,
		SegmentCount:          int(r.SegmentCount),
		WordCount:             int(r.WordCount),
		ShareSpeakingTime:     r.ShareSpeakingTime,
		ShareWords:            r.ShareWords,
		IsFirstSpeaker:        r.IsFirstSpeaker,
		IsLastSpeaker:         r.IsLastSpeaker,
		WPM:                   r.WPM,
		AvgSegmentSeconds:     r.AvgSegmentSeconds,
		MedianSegmentSeconds:  r.MedianSegmentSeconds,
		ShortestTalkSeconds:   r.ShortestTalkSeconds,
		LongestSegmentSeconds: r.LongestSegmentSeconds,
		TurnCount:             int(r.TurnCount),
		AvgTurnSeconds:        r.AvgTurnSeconds,
		AvgTurnSegments:       r.AvgTurnSegments,
	}
}

// WriteStats writes per-label rows to w as Parquet, ordered by label for
// reproducible output.
func WriteStats(w io.Writer, byLabel map[string]stats.PerLabel) error {
	labels := util.Keys(byLabel)
	sort.Strings(labels)

	pw := parquet.NewGenericWriter[statsRow](w)
	for _, label := range labels {
		if _, err := pw.Write([]statsRow{toRow(byLabel[label])}); err != nil {
			return errors.Internal(err)
		}
	}
	if err := pw.Close(); err != nil {
		return errors.Internal(err)
	}
	return nil
}

// Encode renders per-label rows as a Parquet artifact in memory.
func Encode(byLabel map[string]stats.PerLabel) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteStats(&buf, byLabel); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadStats decodes a Parquet stats artifact back to label-keyed rows.
func ReadStats(data []byte) (map[string]stats.PerLabel, error) {
	rows, err := parquet.Read[statsRow](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.InvalidPayload("malformed stats artifact", err)
	}
	out := make(map[string]stats.PerLabel, len(rows))
	for _, r := range rows {
		out[r.Label] = fromRow(r)
	}
	return out, nil
}

// LocationFor returns the artifact location for a payload location: same
// directory, the payload's stem, the stats suffix.
func LocationFor(payload storage.Location) storage.Location {
	base := payload.Key
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	stem := strings.TrimSuffix(base, transcript.PayloadSuffix)
	stem = strings.TrimSuffix(stem, ".json")
	return payload.Sibling(stem + StatsSuffix)
}

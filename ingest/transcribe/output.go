package transcribe

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/segment"
	"github.com/debatelab/speakerkit/util"
)

// JobOutput is the JSON structure Transcribe writes for a finished job.
type JobOutput struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
		SpeakerLabels *speakerLabels `json:"speaker_labels,omitempty"`
		Items         []item         `json:"items,omitempty"`
	} `json:"results"`
	Status string `json:"status"`
}

type speakerLabels struct {
	Speakers int `json:"speakers"`
	Segments []struct {
		StartTime    string `json:"start_time"`
		EndTime      string `json:"end_time"`
		SpeakerLabel string `json:"speaker_label"`
	} `json:"segments"`
}

type item struct {
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	Type         string `json:"type"`
	Alternatives []struct {
		Confidence string `json:"confidence"`
		Content    string `json:"content"`
	} `json:"alternatives"`
}

// ParseOutput converts raw job output into transcribed and diarized
// segments. Without speaker labels the diarized slice is empty and the
// whole transcript becomes one segment.
func ParseOutput(data []byte) ([]segment.Transcribed, []segment.Diarized, error) {
	var out JobOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, nil, errors.InvalidPayload("malformed transcribe output", err)
	}

	if out.Results.SpeakerLabels == nil || len(out.Results.SpeakerLabels.Segments) == 0 {
		transcribed, err := wholeTranscript(&out)
		if err != nil {
			return nil, nil, err
		}
		return transcribed, nil, nil
	}

	var transcribed []segment.Transcribed
	var diarized []segment.Diarized
	for i, seg := range out.Results.SpeakerLabels.Segments {
		start, err := parseSeconds(seg.StartTime)
		if err != nil {
			return nil, nil, errors.InvalidPayload("malformed segment start time", err)
		}
		end, err := parseSeconds(seg.EndTime)
		if err != nil {
			return nil, nil, errors.InvalidPayload("malformed segment end time", err)
		}

		d, err := segment.NewDiarized(start, end, seg.SpeakerLabel)
		if err != nil {
			return nil, nil, errors.InvalidPayload("invalid diarization segment", err).WithDetail("index", i)
		}
		diarized = append(diarized, d)

		text, confidence := assembleText(out.Results.Items, start, end)
		t, err := segment.NewTranscribed(start, end, text)
		if err != nil {
			return nil, nil, errors.InvalidPayload("invalid transcription segment", err).WithDetail("index", i)
		}
		t.Confidence = confidence
		transcribed = append(transcribed, t)
	}
	return transcribed, diarized, nil
}

// wholeTranscript turns an undiarized job into a single segment spanning
// all items.
func wholeTranscript(out *JobOutput) ([]segment.Transcribed, error) {
	var text string
	if len(out.Results.Transcripts) > 0 {
		text = out.Results.Transcripts[0].Transcript
	}

	var end float64
	for _, it := range out.Results.Items {
		if it.EndTime == "" {
			continue
		}
		v, err := parseSeconds(it.EndTime)
		if err != nil {
			return nil, errors.InvalidPayload("malformed item end time", err)
		}
		if v > end {
			end = v
		}
	}

	_, confidence := assembleText(out.Results.Items, 0, end)
	t, err := segment.NewTranscribed(0, end, text)
	if err != nil {
		return nil, err
	}
	t.Confidence = confidence
	return []segment.Transcribed{t}, nil
}

// assembleText joins the pronunciation items falling inside [start, end]
// into running text, attaching punctuation without a leading space, and
// averages their confidences. Items with unparseable times are skipped.
func assembleText(items []item, start, end float64) (string, *float64) {
	var b strings.Builder
	var confidenceSum float64
	var confidenceCount int
	inSpan := false

	for _, it := range items {
		switch it.Type {
		case "pronunciation":
			ts, err := parseSeconds(it.StartTime)
			if err != nil {
				continue
			}
			inSpan = (ts >= start && ts < end) || (ts == start && start == end)
			if !inSpan || len(it.Alternatives) == 0 {
				continue
			}
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(it.Alternatives[0].Content)
			if c, err := strconv.ParseFloat(it.Alternatives[0].Confidence, 64); err == nil {
				confidenceSum += c
				confidenceCount++
			}
		case "punctuation":
			// Punctuation has no timestamps; it belongs to the last word.
			if inSpan && len(it.Alternatives) > 0 {
				b.WriteString(it.Alternatives[0].Content)
			}
		}
	}

	if confidenceCount == 0 {
		return b.String(), nil
	}
	return b.String(), util.Ptr(confidenceSum / float64(confidenceCount))
}

func parseSeconds(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

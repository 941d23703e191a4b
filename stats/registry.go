package stats

import (
	"sort"

	"github.com/debatelab/speakerkit/errors"
)

// Kind is the value type of a statistic, used by presentation layers to
// pick formatting.
type Kind string

const (
	KindCount    Kind = "count"
	KindDuration Kind = "duration_seconds"
	KindRatio    Kind = "ratio_0_1"
	// KindRate is an unbounded rate (words per minute, segments per turn),
	// not a 0..1 ratio; presentation must not render it as a percentage.
	KindRate    Kind = "rate"
	KindBoolean Kind = "boolean"
)

// GroupKey names a display group of statistics.
type GroupKey string

const (
	GroupOverview           GroupKey = "overview"
	GroupSpeakingRate       GroupKey = "speaking_rate"
	GroupUninterruptedTalks GroupKey = "uninterrupted_talks"
	GroupTurnTaking         GroupKey = "turn_taking"
	GroupRelativeShare      GroupKey = "relative_share"
)

// Definition describes one registered statistic.
type Definition struct {
	// Key matches the PerLabel JSON field name.
	Key string `json:"key"`
	// Label is the display name.
	Label string   `json:"label"`
	Kind  Kind     `json:"kind"`
	Group GroupKey `json:"group"`
	// Order positions the definition within its group.
	Order int `json:"order"`
	// Value extracts the statistic from a row; nil means undefined.
	Value func(PerLabel) any `json:"-"`
}

// GroupExport is one display group with its statistics in order. This is
// the only shape presentation layers consume.
type GroupExport struct {
	Key   GroupKey     `json:"key"`
	Label string       `json:"label"`
	Stats []Definition `json:"stats"`
}

var groupLabels = map[GroupKey]string{
	GroupOverview:           "Overview",
	GroupSpeakingRate:       "Speaking rate & segment length",
	GroupUninterruptedTalks: "Uninterrupted talks",
	GroupTurnTaking:         "Turn-taking",
	GroupRelativeShare:      "Relative share",
}

// Registry is the declared set of statistics. It is a constructed value,
// not package state; callers hold their own instance and presentation
// layers render only what it exports.
type Registry struct {
	defs   map[string]Definition
	groups []GroupKey
}

// NewRegistry returns a registry seeded with the built-in statistics.
func NewRegistry() *Registry {
	r := &Registry{
		defs: make(map[string]Definition),
		groups: []GroupKey{
			GroupOverview,
			GroupSpeakingRate,
			GroupUninterruptedTalks,
			GroupTurnTaking,
			GroupRelativeShare,
		},
	}
	for _, d := range builtinDefinitions() {
		r.defs[d.Key] = d
	}
	return r
}

// Register adds or replaces a definition. A key already present is
// replaced; new groups are appended in registration order.
func (r *Registry) Register(d Definition) error {
	if d.Key == "" {
		return errors.MissingField("key")
	}
	if d.Value == nil {
		return errors.MissingField("value")
	}
	r.defs[d.Key] = d
	for _, g := range r.groups {
		if g == d.Group {
			return nil
		}
	}
	r.groups = append(r.groups, d.Group)
	return nil
}

// Lookup returns the definition for key.
func (r *Registry) Lookup(key string) (Definition, bool) {
	d, ok := r.defs[key]
	return d, ok
}

// Export returns every definition grouped and ordered for presentation.
// Groups appear in display order; empty groups are omitted.
func (r *Registry) Export() []GroupExport {
	byGroup := make(map[GroupKey][]Definition, len(r.groups))
	for _, d := range r.defs {
		byGroup[d.Group] = append(byGroup[d.Group], d)
	}

	out := make([]GroupExport, 0, len(r.groups))
	for _, g := range r.groups {
		defs := byGroup[g]
		if len(defs) == 0 {
			continue
		}
		sort.Slice(defs, func(i, j int) bool {
			if defs[i].Order != defs[j].Order {
				return defs[i].Order < defs[j].Order
			}
			return defs[i].Key < defs[j].Key
		})
		label := groupLabels[g]
		if label == "" {
			label = string(g)
		}
		out = append(out, GroupExport{Key: g, Label: label, Stats: defs})
	}
	return out
}

// Groups returns the group keys in display order.
func (r *Registry) Groups() []GroupKey {
	out := make([]GroupKey, len(r.groups))
	copy(out, r.groups)
	return out
}

// RowValues flattens a row through the registry: key to extracted value,
// undefined statistics omitted.
func (r *Registry) RowValues(row PerLabel) map[string]any {
	out := make(map[string]any, len(r.defs))
	for key, d := range r.defs {
		if v := d.Value(row); v != nil {
			out[key] = v
		}
	}
	return out
}

func derefOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// builtinDefinitions is the default per-label statistic set. transcript_count
// has no definition here: it is aggregate-level only (GlobalStats).
func builtinDefinitions() []Definition {
	return []Definition{
		{Key: "total_seconds", Label: "Total speaking time (sec)", Kind: KindDuration, Group: GroupOverview, Order: 0,
			Value: func(r PerLabel) any { return r.TotalSeconds }},
		{Key: "segment_count", Label: "Segment count", Kind: KindCount, Group: GroupOverview, Order: 1,
			Value: func(r PerLabel) any { return r.SegmentCount }},
		{Key: "word_count", Label: "Word count", Kind: KindCount, Group: GroupOverview, Order: 2,
			Value: func(r PerLabel) any { return r.WordCount }},

		{Key: "wpm", Label: "Words per minute", Kind: KindRate, Group: GroupSpeakingRate, Order: 0,
			Value: func(r PerLabel) any { return derefOrNil(r.WPM) }},
		{Key: "avg_segment_duration_sec", Label: "Avg segment duration (sec)", Kind: KindDuration, Group: GroupSpeakingRate, Order: 1,
			Value: func(r PerLabel) any { return derefOrNil(r.AvgSegmentSeconds) }},

		{Key: "shortest_talk_sec", Label: "Shortest talk (sec)", Kind: KindDuration, Group: GroupUninterruptedTalks, Order: 0,
			Value: func(r PerLabel) any { return derefOrNil(r.ShortestTalkSeconds) }},
		{Key: "longest_talk_sec", Label: "Longest talk (sec)", Kind: KindDuration, Group: GroupUninterruptedTalks, Order: 1,
			Value: func(r PerLabel) any { return r.LongestSegmentSeconds }},
		{Key: "median_segment_duration_sec", Label: "Median segment duration (sec)", Kind: KindDuration, Group: GroupUninterruptedTalks, Order: 2,
			Value: func(r PerLabel) any { return derefOrNil(r.MedianSegmentSeconds) }},

		{Key: "turn_count", Label: "Turn count", Kind: KindCount, Group: GroupTurnTaking, Order: 0,
			Value: func(r PerLabel) any { return r.TurnCount }},
		{Key: "avg_turn_length_sec", Label: "Avg turn length (sec)", Kind: KindDuration, Group: GroupTurnTaking, Order: 1,
			Value: func(r PerLabel) any { return derefOrNil(r.AvgTurnSeconds) }},
		{Key: "avg_turn_length_segments", Label: "Avg turn length (segments)", Kind: KindRate, Group: GroupTurnTaking, Order: 2,
			Value: func(r PerLabel) any { return derefOrNil(r.AvgTurnSegments) }},
		{Key: "is_first_speaker", Label: "First speaker", Kind: KindBoolean, Group: GroupTurnTaking, Order: 3,
			Value: func(r PerLabel) any { return r.IsFirstSpeaker }},
		{Key: "is_last_speaker", Label: "Last speaker", Kind: KindBoolean, Group: GroupTurnTaking, Order: 4,
			Value: func(r PerLabel) any { return r.IsLastSpeaker }},

		{Key: "share_speaking_time", Label: "Share of speaking time", Kind: KindRatio, Group: GroupRelativeShare, Order: 0,
			Value: func(r PerLabel) any { return derefOrNil(r.ShareSpeakingTime) }},
		{Key: "share_words", Label: "Share of words", Kind: KindRatio, Group: GroupRelativeShare, Order: 1,
			Value: func(r PerLabel) any { return derefOrNil(r.ShareWords) }},
	}
}

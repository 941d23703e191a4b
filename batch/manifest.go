package batch

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/storage"
)

// Manifest formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// manifestDoc is the structured manifest shape for JSON and YAML.
type manifestDoc struct {
	Locations []string `json:"locations" yaml:"locations"`
}

// FormatForPath picks a manifest format from a file name. Unknown
// extensions fall back to the line-oriented text format.
func FormatForPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".json"):
		return FormatJSON
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return FormatYAML
	default:
		return FormatText
	}
}

// ParseManifest parses a manifest into payload locations. Text manifests
// hold one URI per line; blank lines and #-comments are skipped. JSON and
// YAML manifests hold either a bare list of URIs or {"locations": [...]}.
func ParseManifest(data []byte, format string) ([]storage.Location, error) {
	var uris []string
	switch format {
	case FormatText:
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			uris = append(uris, line)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &uris); err != nil {
			var doc manifestDoc
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, errors.InvalidInput("manifest", "malformed JSON manifest").WithCause(err)
			}
			uris = doc.Locations
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &uris); err != nil {
			var doc manifestDoc
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return nil, errors.InvalidInput("manifest", "malformed YAML manifest").WithCause(err)
			}
			uris = doc.Locations
		}
	default:
		return nil, errors.InvalidInput("format", "unknown manifest format "+format)
	}

	if len(uris) == 0 {
		return nil, errors.InvalidInput("manifest", "manifest lists no locations")
	}

	locations := make([]storage.Location, 0, len(uris))
	for _, uri := range uris {
		loc, err := storage.ParseLocation(uri)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

package storage

import (
	"path"
	"strings"

	"github.com/debatelab/speakerkit/errors"
)

// Scheme constants for supported location kinds.
const (
	SchemeFile = "file"
	SchemeS3   = "s3"
)

// Location is a parsed object address. Bucket is empty for file locations;
// Key is the backend path (object key for S3, file path otherwise).
type Location struct {
	Scheme string
	Bucket string
	Key    string
}

// ParseLocation parses a location URI. Accepted forms:
//
//	s3://bucket/key
//	file:///absolute/path
//	bare/path (treated as a file location)
func ParseLocation(uri string) (Location, error) {
	if uri == "" {
		return Location{}, errors.MissingField("location")
	}

	i := strings.Index(uri, "://")
	if i < 0 {
		return Location{Scheme: SchemeFile, Key: uri}, nil
	}

	scheme := uri[:i]
	rest := uri[i+3:]
	switch scheme {
	case SchemeFile:
		if rest == "" {
			return Location{}, errors.InvalidInput("location", "file URI has no path")
		}
		// file:///a/b carries the path after an empty authority.
		return Location{Scheme: SchemeFile, Key: "/" + strings.TrimPrefix(rest, "/")}, nil
	case SchemeS3:
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return Location{}, errors.InvalidInput("location", "s3 URI must be s3://bucket/key")
		}
		return Location{Scheme: SchemeS3, Bucket: bucket, Key: key}, nil
	default:
		// Parsed shape, routed (and rejected) at open time.
		bucket, key, _ := strings.Cut(rest, "/")
		return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
	}
}

// String renders the location back to URI form.
func (l Location) String() string {
	switch l.Scheme {
	case SchemeS3:
		return "s3://" + l.Bucket + "/" + l.Key
	case SchemeFile:
		return "file://" + l.Key
	default:
		return l.Scheme + "://" + l.Bucket + "/" + l.Key
	}
}

// Sibling returns a location for name in the same directory as l. This is
// how output artifacts are colocated with their source payloads.
func (l Location) Sibling(name string) Location {
	return Location{
		Scheme: l.Scheme,
		Bucket: l.Bucket,
		Key:    path.Join(path.Dir(l.Key), name),
	}
}

// Package transcript defines the Transcript entity and the JSON payload
// contract it is exchanged in.
//
// A Transcript is a named, immutable collection of merged segments plus
// metadata. Re-running the recognition pipeline produces a new Transcript;
// nothing mutates one in place. The payload shape
// ({duration, speakers_count, transcription: [...]}) is the on-disk and
// on-wire contract shared with the recognition collaborators and the
// storage layer.
package transcript

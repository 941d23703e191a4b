// Package segment defines the time-aligned segment types produced by the
// speech-recognition and speaker-diarization collaborators, and the Merger
// that reconciles the two streams into speaker-labeled transcript segments.
//
// The two inputs are independently produced and imperfectly aligned: the
// recognizer emits text with timestamps, the diarizer emits speaker turns
// with timestamps, and neither knows about the other. The Merger assigns
// each text segment the speaker label whose diarized intervals overlap it
// the most.
//
// # Usage
//
//	merger := segment.NewMerger()
//	merged, err := merger.Merge(textSegments, speakerSegments)
package segment

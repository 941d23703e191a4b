// Package transcribe ingests Amazon Transcribe job output into the
// segment model: word-level items become transcribed segments and the
// job's speaker labels become diarized segments, ready for merging.
package transcribe

package internal

import (
	"errors"
	"strings"
)

// TranscriptSource identifies where a transcript came from
type TranscriptSource int

const (
	SourceNone TranscriptSource = iota
	SourceOfficialSubtitle
	SourceAutoSubtitle
	SourceWhisper
)

// String returns a human-readable representation of the transcript source
func (s TranscriptSource) String() string {
	switch s {
	case SourceOfficialSubtitle:
		return "official subtitles"
	case SourceAutoSubtitle:
		return "auto-generated subtitles"
	case SourceWhisper:
		return "whisper transcription"
	default:
		return "none"
	}
}

// FailureReason classifies why a pipeline run produced no summary
type FailureReason int

const (
	FailureNone FailureReason = iota
	FailureMissingCredential
	FailureNoTranscript
	FailureSummarization
)

// String returns a human-readable representation of the failure reason
func (r FailureReason) String() string {
	switch r {
	case FailureMissingCredential:
		return "missing credential"
	case FailureNoTranscript:
		return "no transcript available"
	case FailureSummarization:
		return "summarization failed"
	default:
		return "none"
	}
}

// Sentinel errors for the pipeline failure taxonomy. Recoverable conditions
// (download failures, tool failures) are downgraded to empty results at
// stage boundaries and never cross into the controller.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrDownloadFailed    = errors.New("download failed")
	ErrNoTranscript      = errors.New("no transcript available")
	ErrVideoTooLong      = errors.New("video exceeds maximum duration")
)

// PipelineResult is the single outcome of a pipeline run: either a summary
// or a classified failure. Err carries detail for the failure reason.
type PipelineResult struct {
	Summary    string
	Transcript string
	Source     TranscriptSource
	Failure    FailureReason
	Err        error
}

// Failed reports whether the run ended without a summary
func (r *PipelineResult) Failed() bool {
	return r.Failure != FailureNone
}

// CleanedTranscript is an ordered sequence of non-empty caption lines with
// no two identical lines adjacent. It is built once per subtitle file and
// not modified afterwards.
type CleanedTranscript []string

// Empty reports whether normalization retained no lines
func (t CleanedTranscript) Empty() bool {
	return len(t) == 0
}

// Text joins the retained lines into the flow text used for summarization
func (t CleanedTranscript) Text() string {
	return strings.Join(t, "\n")
}

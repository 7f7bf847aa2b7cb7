package domain

import "errors"

var (
	// ErrNoTranscript indicates the document has no body > p text
	ErrNoTranscript = errors.New("no transcript available for this video")
	// ErrBadDocument indicates the upstream document is not well-formed XML
	ErrBadDocument = errors.New("bad transcript document")
)

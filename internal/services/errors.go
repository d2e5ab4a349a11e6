package services

import "errors"

var (
	ErrSessionClosed       = errors.New("interview session is closed")
	ErrInterviewIncomplete = errors.New("interview is not completed")
	ErrHeaderMismatch      = errors.New("stored header does not match record columns")
)

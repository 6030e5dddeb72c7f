package thread

import "errors"

// Messages shown to the user when a mutation fails without a usable
// server message.
const (
	MsgAddFailed    = "Failed to add comment"
	MsgDeleteFailed = "Failed to delete comment"
	MsgRequired     = "Comment is required"
)

// ErrSubmissionPending is returned when a comment is submitted for a
// project that already has a submission in flight.
var ErrSubmissionPending = errors.New("a comment is already being submitted")

// ValidationError is a client-side check that failed before any request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmissionError is a rejected comment create. Message is safe to show
// to the user as-is.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// DeletionError is a failed comment delete. Its message never includes
// server detail; the cause is kept for logging.
type DeletionError struct {
	Err error
}

func (e *DeletionError) Error() string {
	return MsgDeleteFailed
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

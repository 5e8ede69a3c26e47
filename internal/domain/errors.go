package domain

import "errors"

var (
	ErrTeamExists        = errors.New("team name already exists")
	ErrTeamNotFound      = errors.New("team not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrVideoExists       = errors.New("video already attached to this course")
	ErrFieldExists       = errors.New("custom field name already exists")
	ErrFieldNotFound     = errors.New("custom field not found")
	ErrUnsupportedMedia  = errors.New("unsupported video file type")
	ErrUploadsDisabled   = errors.New("video uploads are not configured")
	ErrMissingIdentifier = errors.New("identifier is required")
)

// ValidationError carries a message meant to be shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

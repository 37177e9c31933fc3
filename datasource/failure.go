package datasource

import (
	"errors"
	"fmt"
	"net/http"
)

// FailureKind classifies why a lookup did not produce a snapshot.
type FailureKind int

const (
	NetworkOrServerError FailureKind = iota
	NotFound
	Unauthorized
	LocationUnavailable
)

// User-facing messages for each failure kind.
const (
	MsgNotFound            = "City not found. Please check the spelling and try again."
	MsgUnauthorized        = "API key error. Please try again later."
	MsgNetworkOrServer     = "Unable to fetch weather data. Please try again."
	MsgLocationUnavailable = "Unable to determine your location."
)

func (k FailureKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case Unauthorized:
		return "Unauthorized"
	case LocationUnavailable:
		return "LocationUnavailable"
	default:
		return "NetworkOrServerError"
	}
}

// QueryFailure is the terminal outcome of one failed lookup attempt.
// Message is safe to show to the user; Err keeps the underlying cause for logs.
type QueryFailure struct {
	Kind    FailureKind
	Message string
	Err     error
}

// NewFailure creates a failure of the given kind with its standard message.
func NewFailure(kind FailureKind, cause error) *QueryFailure {
	return &QueryFailure{Kind: kind, Message: messageFor(kind), Err: cause}
}

func messageFor(kind FailureKind) string {
	switch kind {
	case NotFound:
		return MsgNotFound
	case Unauthorized:
		return MsgUnauthorized
	case LocationUnavailable:
		return MsgLocationUnavailable
	default:
		return MsgNetworkOrServer
	}
}

func (f *QueryFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
	return f.Kind.String()
}

func (f *QueryFailure) Unwrap() error {
	return f.Err
}

// Is matches any *QueryFailure of the same kind, so sentinel failures work
// with errors.Is.
func (f *QueryFailure) Is(target error) bool {
	t, ok := target.(*QueryFailure)
	return ok && t.Kind == f.Kind
}

// ClassifyStatus maps an HTTP status code to a failure.
// It returns nil for 200 OK.
func ClassifyStatus(status int) *QueryFailure {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return NewFailure(NotFound, fmt.Errorf("API returned status %d", status))
	case http.StatusUnauthorized:
		return NewFailure(Unauthorized, fmt.Errorf("API returned status %d", status))
	default:
		return NewFailure(NetworkOrServerError, fmt.Errorf("API returned status %d", status))
	}
}

// AsFailure extracts a *QueryFailure from err. Any other error is treated as
// a network or server error.
func AsFailure(err error) *QueryFailure {
	if err == nil {
		return nil
	}
	var f *QueryFailure
	if errors.As(err, &f) {
		return f
	}
	return NewFailure(NetworkOrServerError, err)
}

package domain

import "fmt"

// Status is the HTTP status code of a completed request.
type Status int

// Band is the classification of a Status that drives the before-swap branch.
type Band int

const (
	BandSuccess Band = iota
	BandClientError
	BandServerError
)

func (b Band) String() string {
	switch b {
	case BandSuccess:
		return "success"
	case BandClientError:
		return "client-error"
	case BandServerError:
		return "server-error"
	}
	return fmt.Sprintf("band(%d)", int(b))
}

// Band classifies the status: <400 success, 400-499 client error, >=500 server error.
func (s Status) Band() Band {
	switch {
	case s < 400:
		return BandSuccess
	case s < 500:
		return BandClientError
	default:
		return BandServerError
	}
}

// Validate rejects codes below 100. There is no upper bound: anything from 500 up is a
// server error.
func (s Status) Validate() error {
	if s < 100 {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return nil
}

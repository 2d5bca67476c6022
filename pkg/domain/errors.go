package domain

import "errors"

// ErrSignalConsumed is returned when a signal is dispatched more than once.
var ErrSignalConsumed = errors.New("signal already consumed")

// ErrUnknownSignal is returned when a signal kind has no meaning for the dispatcher.
var ErrUnknownSignal = errors.New("unknown signal kind")

// ErrInvalidStatus is returned when a status code is outside the HTTP range.
var ErrInvalidStatus = errors.New("invalid response status")

// ErrNoBuilder is returned by a modal presenter that was built without a modal builder.
var ErrNoBuilder = errors.New("no error modal builder registered")

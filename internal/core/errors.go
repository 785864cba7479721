package core

import "errors"

var (
	// ErrTransportUnavailable is returned when mailbox credentials are missing
	ErrTransportUnavailable = errors.New("mail transport unavailable: missing credentials")

	// ErrTransport wraps protocol and network failures of the mail transports
	ErrTransport = errors.New("mail transport error")

	// ErrClassificationUnavailable is returned when no LLM client is configured or the call failed
	ErrClassificationUnavailable = errors.New("classification unavailable")

	// ErrNoJSONObject is returned when the model response contains no JSON object
	ErrNoJSONObject = errors.New("no JSON object in model response")

	// ErrInvalidClassification is returned when a required field is missing or has the wrong type
	ErrInvalidClassification = errors.New("invalid classification")
)

/*
Package errs provides the application error type and its numeric error codes.

The codes identify specific request or lookup failures both in the server logs
and in the JSON responses sent to views.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON for the endpoint.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Profile Lookup Errors
const (
	// ErrProfileNotFound indicates that the looked-up GitHub account does not exist.
	ErrProfileNotFound = 2001

	// ErrLookupMalformed indicates that the lookup answered without the fields a profile needs.
	ErrLookupMalformed = 2002

	// ErrLookupFailed indicates a network failure or an unexpected response from the lookup API.
	ErrLookupFailed = 2003

	// ErrLookupSuperseded indicates that a newer search started before this one completed.
	ErrLookupSuperseded = 2004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server error.
	ErrUnknown = 5000
)

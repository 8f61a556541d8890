package errs

import (
	"errors"
	"net/http"

	"ghprofile/internal/app/profile"
)

// errorMap holds the user message and HTTP status for every error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Profile Lookup Errors
	ErrProfileNotFound:  {Code: ErrProfileNotFound, Message: "GitHub user not found.", Status: http.StatusNotFound},
	ErrLookupMalformed:  {Code: ErrLookupMalformed, Message: "GitHub returned an incomplete profile.", Status: http.StatusBadGateway},
	ErrLookupFailed:     {Code: ErrLookupFailed, Message: "Profile lookup failed. Please try again.", Status: http.StatusBadGateway},
	ErrLookupSuperseded: {Code: ErrLookupSuperseded, Message: "A newer search replaced this one.", Status: http.StatusConflict},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}

// lookupErrors maps the profile package's lookup sentinels to codes.
var lookupErrors = []struct {
	err  error
	code int
}{
	{profile.ErrEmptyUsername, ErrInvalidParams},
	{profile.ErrUserNotFound, ErrProfileNotFound},
	{profile.ErrMalformedPayload, ErrLookupMalformed},
	{profile.ErrSuperseded, ErrLookupSuperseded},
	{profile.ErrLookupFailed, ErrLookupFailed},
}

// FromLookup translates an error returned by a profile search into a CustomError.
// Errors outside the lookup taxonomy become ErrUnknown.
func FromLookup(err error) *CustomError {
	for _, le := range lookupErrors {
		if errors.Is(err, le.err) {
			return NewError(le.code)
		}
	}
	return NewError(ErrUnknown, err)
}

/*
Package req binds HTTP request bodies into Go values, translating malformed input into errs codes.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ghprofile/internal/pkg/errs"
)

// MaxJSONBodySize bounds the size of a JSON request body.
const MaxJSONBodySize int64 = 64 << 10 // 64 KB

// BindJSON decodes the JSON body of r into dst.
// Unknown fields, trailing content, and oversized bodies are rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

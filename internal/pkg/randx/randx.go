/*
Package randx generates the identifiers used to correlate feed subscribers and lookups in the logs.
*/
package randx

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// SubscriberPrefix marks feed subscriber ids.
	SubscriberPrefix = "sub_"

	// LookupPrefix marks lookup request ids.
	LookupPrefix = "lkp_"
)

// SubscriberID returns a new feed subscriber id.
func SubscriberID() string {
	return SubscriberPrefix + uuid.NewString()
}

// LookupID returns a new lookup request id.
func LookupID() string {
	return LookupPrefix + uuid.NewString()
}

// IsValid reports whether id has the given prefix followed by a UUID.
func IsValid(id, prefix string) bool {
	raw, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(raw)
	return err == nil
}

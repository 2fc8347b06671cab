package log

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

var stackOnce sync.Once

// EnableStackMarshaler makes zerolog's Stack() render the stack trace that
// cockroachdb/errors attached to an error.
func EnableStackMarshaler() {
	stackOnce.Do(func() {
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			if s := extractStacktrace(err); s != "" {
				return s
			}
			return nil
		}
	})
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

package submit

import (
	"context"

	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
)

// ErrInFlight is returned when a submission with the same key has not
// finished yet.
var ErrInFlight = httperr.ErrBusiness("submission_in_progress")

// Guard lets exactly one submission per key run at a time.
//
// The returned release func must be called once the backend call has
// finished, whatever its outcome.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

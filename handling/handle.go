package handling

import (
	"errors"
	"net/http"
	"stitchmart_server/lib"

	"github.com/MonkyMars/gecho"
)

// RespondError translates a domain error into the matching HTTP response.
// Unrecognized errors are logged and answered with a generic 500 so
// internals never leak to the client.
func RespondError(w http.ResponseWriter, logger *gecho.Logger, err error, msg string) {
	if verr, ok := lib.AsValidationError(err); ok {
		gecho.BadRequest(w,
			gecho.WithMessage("Validation failed"),
			gecho.WithData(map[string]any{"errors": verr.Errors}),
			gecho.Send(),
		)
		return
	}

	switch {
	case errors.Is(err, lib.ErrValidation):
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage(msg), gecho.Send())
	case errors.Is(err, lib.ErrForbidden):
		gecho.Forbidden(w, gecho.WithMessage(msg), gecho.Send())
	case errors.Is(err, lib.ErrConflict),
		errors.Is(err, lib.ErrInvalidTransition),
		errors.Is(err, lib.ErrInsufficientStock):
		gecho.Conflict(w, gecho.WithMessage(msg), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials),
		errors.Is(err, lib.ErrInvalidToken),
		errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage(msg), gecho.Send())
	default:
		logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
		gecho.InternalServerError(w, gecho.Send())
	}
}

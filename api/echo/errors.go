package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/user"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHTTPForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		var (
			httpErr *echo.HTTPError
			nfErr   *core.NotFoundError
			cfErr   *core.ConflictError
			azErr   *core.AuthorizationError
			vErr    *core.ValidationError
			fldErrs validator.ValidationErrors
		)

		cause := errors.Cause(err)
		switch {
		case errors.As(cause, &httpErr):
			if httpErr.Internal != nil {
				if herr, ok := httpErr.Internal.(*echo.HTTPError); ok {
					httpErr = herr
				}
			}
			code = httpErr.Code
			message = httpErr.Message
		case errors.As(cause, &nfErr):
			code = http.StatusNotFound
			message = nfErr.Error()
		case errors.As(cause, &cfErr):
			code = http.StatusConflict
			message = echo.Map{"field": cfErr.Field, "error": cfErr.Error()}
		case errors.As(cause, &azErr):
			code = http.StatusForbidden
			message = azErr.Error()
		case errors.As(cause, &fldErrs):
			errs := make(map[string]string, len(fldErrs))
			for _, fErr := range fldErrs {
				errs[fErr.Field()] = fErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = errs
		case errors.As(cause, &vErr):
			if vErr.Fields != nil {
				errs := make(map[string]string, len(vErr.Fields))
				for _, fErr := range vErr.Fields {
					errs[fErr.Field] = fErr.Error
				}
				message = errs
			} else {
				message = vErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.UserID
				usr.Username = claims.Username
			}
			logger.Error(msg, errors.Wrap(err, msg), usr)
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

package mid

import (
	"context"
	"net/http"

	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/foundation/logger"
)

// Errors handles errors coming out of the call chain. It logs the error and
// converts anything that is not already an app error into one. Errors marked
// internal only are logged in full but leave with a generic message.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			if errs.IsFieldErrors(err) {
				fieldErrors := errs.GetFieldErrors(err)
				log.Error(ctx, "handled error during request", "err", fieldErrors.Error())
				return resp
			}

			var appErr *errs.Error
			switch {
			case errs.IsError(err):
				appErr = errs.GetError(err)
			default:
				appErr = errs.Errorf(errs.Internal, "%s", err)
			}

			log.Error(ctx, "handled error during request",
				"err", appErr.Message,
				"source_err_file", appErr.FileName,
				"source_err_func", appErr.FuncName)

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Errorf(errs.Internal, "internal server error")
			}

			return appErr
		}

		return h
	}

	return m
}

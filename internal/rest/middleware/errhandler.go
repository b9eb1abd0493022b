package middleware

import (
	"fmt"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/sentry"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/gin-gonic/gin"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// ErrorHandler renders the last error a handler attached with c.Error.
// Server side failures are logged in full and answered with a generic
// message plus the request id the log line carries.
func ErrorHandler(log *logger.Logger, sentryService *sentry.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		ctx := c.Request.Context()
		status := ierr.HTTPStatusFromErr(err)

		body := dto.ErrorBody{Code: ierr.Code(err)}
		if ierr.IsUnexpected(err) {
			correlationID := types.GetRequestID(ctx)
			log.WithContext(ctx).Errorw("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", status,
				"error", err,
				"stack", fmt.Sprintf("%+v", err),
			)
			sentryService.CaptureException(ctx, err)

			body.Message = unexpectedErrorMessage
			body.CorrelationID = correlationID
		} else {
			body.Message = ierr.GetDisplayMessage(err)
			if body.Message == "" {
				body.Message = unexpectedErrorMessage
			}
			if details := ierr.GetReportableDetails(err); len(details) > 0 {
				body.Details = details
			}
		}

		c.JSON(status, dto.NewErrorEnvelope(body.Message, body))
	}
}

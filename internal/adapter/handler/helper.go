package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voxly/errors"
	"github.com/johnquangdev/voxly/internal/adapter/dto/common"
	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/internal/usecase/briefing"
	"github.com/johnquangdev/voxly/internal/usecase/session"
)

// getRequestID reads X-Request-ID from the request, or the one the
// RequestID middleware generated for the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := common.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := common.ErrorResponse{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps usecase and domain errors onto API errors.
// Pipeline failures carry the same localized message the status shows.
func toAppError(err error, sessionID string, msgs briefing.Messages) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var (
		inputErr *entities.InputError
		cfgErr   *entities.ConfigurationError
		trErr    *entities.TranscriptionError
		anErr    *entities.AnalysisError
	)
	switch {
	case stdErrors.Is(err, session.ErrSessionNotFound):
		return errors.ErrSessionNotFound(sessionID)
	case stdErrors.Is(err, entities.ErrBusy):
		return errors.ErrSessionBusy(sessionID)
	case stdErrors.As(err, &inputErr):
		return errors.ErrEmptyInput(inputErr.Error())
	case stdErrors.As(err, &cfgErr):
		return errors.ErrConfiguration(briefing.Classify(err, msgs), err)
	case stdErrors.As(err, &trErr):
		msg := briefing.Classify(err, msgs)
		if msg == msgs.TooManyRequests {
			return errors.ErrRateLimited(msg, err)
		}
		return errors.ErrTranscriptionFailed(msg, err)
	case stdErrors.As(err, &anErr):
		msg := briefing.Classify(err, msgs)
		if msg == msgs.TooManyRequests {
			return errors.ErrRateLimited(msg, err)
		}
		return errors.ErrAnalysisFailed(msg, err)
	}
	return errors.ErrInternal(err)
}

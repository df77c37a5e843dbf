package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/actiondesk/action-tracker/errors"
	"github.com/actiondesk/action-tracker/internal/adapter/dto/common"
	"github.com/actiondesk/action-tracker/internal/usecase/actionitem"
	usecaseErrors "github.com/actiondesk/action-tracker/internal/usecase/errors"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// parsePathID reads a numeric :id path parameter
func parsePathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.ErrInvalidArgument("id must be a positive integer")
	}
	return uint(id), nil
}

// toAppError maps usecase errors onto the API error taxonomy.
// Anything unmapped falls through as an internal error.
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var transitionErr *usecaseErrors.InvalidStatusTransitionError
	if stdErrors.As(err, &transitionErr) {
		return errors.ErrInvalidTransition(string(transitionErr.From), string(transitionErr.To))
	}

	id := c.Param("id")
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrActionItemNotFound):
		return errors.ErrActionItemNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingHasNoContent):
		return errors.ErrMeetingHasNoContent(id)
	case stdErrors.Is(err, usecaseErrors.ErrExtractionInProgress):
		return errors.ErrExtractionInProgress(id)
	case stdErrors.Is(err, usecaseErrors.ErrExtractionFailed):
		return errors.ErrExtractionFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidStatus):
		return errors.ErrInvalidStatus(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrInvalidPriority):
		return errors.ErrInvalidPriority(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrDuplicateBatchIDs):
		return errors.ErrDuplicateBatchIDs()
	case stdErrors.Is(err, usecaseErrors.ErrBatchTooLarge):
		return errors.ErrBatchTooLarge(actionitem.MaxBatchSize)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	default:
		return errors.ErrInternal(err)
	}
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(c, err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
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
		Code:    appErr.Code.String(),
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// bindAndValidate binds the request and runs struct validation,
// normalizing both failure modes to the same payload error
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// notImplemented returns 501 Not Implemented response
func notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

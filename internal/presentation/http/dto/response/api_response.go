package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sangkips/preferences-api/pkg/apperror"
)

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong
type ErrorDetail struct {
	Code      string                `json:"code"`
	Message   string                `json:"message"`
	Fields    []apperror.FieldError `json:"fields,omitempty"`
	RequestID string                `json:"request_id,omitempty"`
}

// OK sends a 200 OK response with data as the body
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error maps err to its status and aborts. Server side failures are logged
// with the request logger; their cause never reaches the client.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("code", appErr.Code).Msg("request failed")
	}
	_ = c.Error(err)
	Abort(c, appErr)
}

// Abort writes the error envelope without logging
func Abort(c *gin.Context, appErr *apperror.AppError) {
	c.AbortWithStatusJSON(appErr.Status, ErrorResponse{
		Error: ErrorDetail{
			Code:      appErr.Code,
			Message:   appErr.Message,
			Fields:    appErr.Fields,
			RequestID: c.GetString("request_id"),
		},
	})
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context) {
	Error(c, apperror.ErrUnauthorized)
}

// BadRequest sends a 400 response for a body that could not be decoded
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, apperror.NewBadRequestError(message, err))
}

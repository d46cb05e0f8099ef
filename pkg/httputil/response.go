package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/reception-gateway/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error details. Fields are plain strings and ints so
// the envelope stays serializable no matter what the underlying failure was.
type Error struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	name := "InternalError"
	message := "internal server error"

	if appErr, ok := err.(*errors.AppError); ok {
		status = appErr.StatusCode()
		name = appErr.Name()
		message = appErr.Message
	}

	c.JSON(status, Response{
		Success: false,
		Message: message,
		Error: &Error{
			Name:    name,
			Message: message,
			Code:    status,
		},
	})
}

// AbortWithError sends an error response and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	RespondWithError(c, err)
	c.Abort()
}

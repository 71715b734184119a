// Package response renders the API's JSON envelope. Every endpoint
// answers with the same shape: a success flag plus either data or a
// structured error.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/stackboard/stackboard/pkg/errors"
)

// Response is the envelope written for every API reply.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo is the client-facing portion of an error.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data inside a success envelope.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

// Error renders err as an error envelope. Unknown errors collapse to a
// generic 500 so internals never leak.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: appErr.Code, Message: appErr.Message},
	})
}

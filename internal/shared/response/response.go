package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Read endpoints answer bare JSON arrays and plain-text errors, which is what the
// book browser frontend consumes. The envelope below is only used by the
// operational endpoints (health, 404, panics).

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes data as-is.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Text writes a plain-text body.
func Text(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}

// QueryError reports a storage failure verbatim, as plain text.
func QueryError(c *gin.Context, err error) {
	c.String(http.StatusInternalServerError, err.Error())
}

func BadRequest(c *gin.Context, message string) {
	c.String(http.StatusBadRequest, message)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{
		Success: true,
		Data:    data,
	})
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

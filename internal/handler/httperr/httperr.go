package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope every non-2xx body uses.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// AbortWithError writes the envelope and stops the handler chain.
func AbortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{Code: code, Message: message})
}

// AbortWithDetails writes the envelope with a structured details payload.
func AbortWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.AbortWithStatusJSON(status, Response{Code: code, Message: message, Details: details})
}

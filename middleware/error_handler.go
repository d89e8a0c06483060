package middleware

import (
	"errors"
	"log"
	"net/http"

	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached to the context as
// {success, statusCode, message}. Errors that are not *utils.HTTPError become
// a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		statusCode := http.StatusInternalServerError
		message := "Internal Server Error"

		err := c.Errors.Last().Err
		var httpErr *utils.HTTPError
		if errors.As(err, &httpErr) {
			statusCode = httpErr.StatusCode
			if httpErr.Message != "" {
				message = httpErr.Message
			}
		} else {
			log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}

		c.JSON(statusCode, gin.H{
			"success":    false,
			"statusCode": statusCode,
			"message":    message,
		})
	}
}

package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request to the standard logger's output.
func Logger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output: log.Writer(),
		Formatter: func(param gin.LogFormatterParams) string {
			logFormat := fmt.Sprintf("[%s] %s %s %d %s %s",
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.StatusCode,
				param.Latency,
				param.ClientIP,
			)
			if param.ErrorMessage != "" {
				logFormat += " " + param.ErrorMessage
			}
			return logFormat + "\n"
		},
		SkipPaths: []string{"/health"},
	})
}

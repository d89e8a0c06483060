package controllers

import (
	"net/http"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

// fail hands err to middleware.ErrorHandler and stops the chain.
func fail(c *gin.Context, err *utils.HTTPError) {
	_ = c.Error(err)
	c.Abort()
}

func requireCaller(c *gin.Context) (*models.Caller, bool) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		fail(c, utils.HandleError(http.StatusUnauthorized, "Unauthorized"))
		return nil, false
	}
	return caller, true
}

// ErrorResponse is the envelope middleware.ErrorHandler writes.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

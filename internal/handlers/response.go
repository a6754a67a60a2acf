package handlers

import (
	"errors"
	"log"
	"net/http"

	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Message: message, Data: data})
}

// respondError maps a service error kind to an HTTP status. Anything
// without a kind is an internal error: the caller gets a generic message
// and the cause goes to the server log only.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrSessionCompleted):
		status = http.StatusConflict
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "Something went wrong! Please try again later."
	}
	c.JSON(status, Response{Message: message, Error: message})
}

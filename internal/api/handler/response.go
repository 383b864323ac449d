package handler

import (
	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func respond(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondList(c echo.Context, status int, data interface{}, count int) error {
	return c.JSON(status, Response{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

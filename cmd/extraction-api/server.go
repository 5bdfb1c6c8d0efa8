package main

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

type HttpError struct {
	code int
	error
}

func (e HttpError) Error() string {
	return e.error.Error()
}

func NewHttpError(code int, err error) HttpError {
	return HttpError{
		code:  code,
		error: err,
	}
}

type server struct {
	controller controller
}

func (s server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.Health)
	r.POST("/api/v1/extract", s.Extract)
}

func (s server) Health(c *gin.Context) {
	c.JSON(200, map[string]interface{}{
		"status":  "ok",
		"service": "lexiscan extraction api",
		"version": version,
	})
}

func (s server) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		handleError(c, NewHttpError(400, errors.New("request must contain a document under the 'file' form field")))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		handleError(c, NewHttpError(400, errors.New("invalid file type - only PDFs are supported")))
		return
	}

	if !s.controller.Ready() {
		handleError(c, NewHttpError(503, errors.New("extraction engines are not ready")))
		return
	}

	response, err := s.controller.Extract(c.Request.Context(), header.Filename, file)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(200, response)
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		abort(c, 500, errors.New("abort called on nil error"))
		return
	}
	switch e := err.(type) {
	case HttpError:
		abort(c, e.code, e.error)
	default:
		abort(c, 500, e)
	}
}

func abort(c *gin.Context, code int, err error) {
	c.JSON(code, map[string]interface{}{
		"status":  code,
		"message": err.Error(),
	})
	c.Abort()
}

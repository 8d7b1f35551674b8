package httpresp

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the body shape of every JSON response.
type Envelope struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

type ErrorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type PageResponse[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Timestamp: time.Now().UTC()})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Timestamp: time.Now().UTC()})
}

func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	OK(c, ListResponse[T]{Items: items, Total: len(items)})
}

func Page[T any](c *gin.Context, items []T, page, limit int, total int64) {
	if items == nil {
		items = []T{}
	}
	OK(c, PageResponse[T]{Items: items, Page: page, Limit: limit, Total: total})
}

func Fail(c *gin.Context, status int, body ErrorBody) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: &body, Timestamp: time.Now().UTC()})
}

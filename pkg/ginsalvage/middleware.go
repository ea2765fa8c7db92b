// Package ginsalvage exposes JSON recovery to gin handlers.
package ginsalvage

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deepankarm/jsonsalvage/pkg/jsonvalue"
	"github.com/deepankarm/jsonsalvage/pkg/salvage"
)

// ResultKey is the gin context key RecoverBody stores the *salvage.Result under.
const ResultKey = "salvage_result"

// Response is the body written by Handler.
type Response struct {
	// Recovered is false when no JSON could be recovered from the body
	Recovered bool `json:"recovered" jsonschema:"description=Whether a JSON value was recovered"`

	// Value is the recovered JSON, null when nothing was recovered
	Value jsonvalue.Value `json:"value" jsonschema:"description=The recovered JSON value"`

	// Warnings lists what was wrong with the input and how it was handled
	Warnings salvage.Warnings `json:"warnings" jsonschema:"description=Diagnostics in the order they were produced"`
}

// RecoverBody creates a middleware that runs salvage.Recover over the request
// body and stores the result under ResultKey. Oversize bodies are rejected
// with 413. Bodies sent with Content-Encoding gzip or zstd are decoded first,
// and decoding stops as soon as the output outgrows the size limit.
//
// Example:
//
//	router.POST("/ingest", ginsalvage.RecoverBody(), func(c *gin.Context) {
//	    res, _ := ginsalvage.GetResult(c)
//	    if !res.OK() {
//	        c.JSON(http.StatusUnprocessableEntity, res.Warnings)
//	        return
//	    }
//	    // use res.Value
//	})
func RecoverBody(opts ...salvage.Option) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := recoverRequest(c, opts)
		if !ok {
			return
		}
		c.Set(ResultKey, res)
		c.Next()
	}
}

// GetResult retrieves the result stored by RecoverBody.
func GetResult(c *gin.Context) (*salvage.Result, bool) {
	val, exists := c.Get(ResultKey)
	if !exists {
		return nil, false
	}
	res, ok := val.(*salvage.Result)
	return res, ok
}

// Handler returns a handler that recovers the request body and responds with
// a Response. The status is 200 when a value was recovered and 422 otherwise.
// A result already stored by RecoverBody is reused.
func Handler(opts ...salvage.Option) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := GetResult(c)
		if !ok {
			if res, ok = recoverRequest(c, opts); !ok {
				return
			}
		}

		status := http.StatusOK
		if !res.OK() {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, Response{
			Recovered: res.OK(),
			Value:     res.Value,
			Warnings:  res.Warnings,
		})
	}
}

// recoverRequest reads and recovers the body. It returns false when it has
// already written an error response.
func recoverRequest(c *gin.Context, opts []salvage.Option) (*salvage.Result, bool) {
	if c.Request.Body == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
		return nil, false
	}
	limit := byteLimit(salvage.MaxLength(opts...))
	body, err := readBody(c.Request.Body, c.GetHeader("Content-Encoding"), limit)
	if err != nil {
		var unsupported errUnsupportedEncoding
		switch {
		case errors.As(err, &unsupported):
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
			return nil, false
		case errors.Is(err, salvage.ErrSizeLimitExceeded):
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "recovery refused",
				"details": err.Error(),
			})
			return nil, false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "failed to read request body",
			"details": err.Error(),
		})
		return nil, false
	}

	res, err := salvage.Recover(string(body), opts...)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, salvage.ErrSizeLimitExceeded) {
			status = http.StatusRequestEntityTooLarge
		}
		c.AbortWithStatusJSON(status, gin.H{
			"error":   "recovery refused",
			"details": err.Error(),
		})
		return nil, false
	}
	return res, true
}

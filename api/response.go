package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/pagination"
	"taxiservice/service"
	"taxiservice/storage"
)

var errBadID = errors.New("invalid id")

func (h *Handler) abortWithError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, errBadID):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, pagination.ErrNotAnInteger), errors.Is(err, pagination.ErrEmptyPage):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "invalid page: " + err.Error()})
	case errors.As(err, &verr):
		h.requestLog(c).Debug("invalid input", logger.String("path", c.Request.URL.Path), logger.Any("errors", verr.Fields))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid input", "errors": verr.Fields})
	case errors.Is(err, storage.ErrAlreadyExists):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "record already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.requestLog(c).Error("request failed",
			logger.String("path", c.Request.URL.Path),
			logger.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

func listQuery(c *gin.Context) service.ListQuery {
	return service.ListQuery{
		Search: c.Query("search_edit"),
		Page:   c.Query("page"),
	}
}

// listContext mirrors the context a paginated list page is rendered with.
func listContext[T any](name string, res *service.ListResult[T]) gin.H {
	return gin.H{
		name:           res.Items,
		"is_paginated": res.IsPaginated(),
		"paginator":    res.Paginator,
		"page_obj":     res.Page,
		"search_edit":  res.Search,
	}
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

const (
	defaultLimit = 5
	maxLimit     = 100
)

// parseLimit reads the page size, clamped to 1..100 with a default of 5.
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}

	return limit, nil
}

// parseTimeCursor reads a resume point from cursor_id + cursor_time.
// Both must be present together; a request without them starts at the
// first page.
func parseTimeCursor(c *gin.Context) (*models.TimeCursor, error) {
	rawID := c.Query("cursor_id")
	rawTime := c.Query("cursor_time")
	if rawID == "" && rawTime == "" {
		return nil, nil
	}
	if rawID == "" || rawTime == "" {
		return nil, fmt.Errorf("cursor_id and cursor_time must be provided together")
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("cursor_id must be a valid uuid")
	}

	ts, err := time.Parse(time.RFC3339Nano, rawTime)
	if err != nil {
		return nil, fmt.Errorf("cursor_time must be RFC 3339")
	}

	return &models.TimeCursor{ID: id, Time: ts}, nil
}

// parseCountCursor reads a resume point from cursor_id + cursor_count.
func parseCountCursor(c *gin.Context) (*models.CountCursor, error) {
	rawID := c.Query("cursor_id")
	rawCount := c.Query("cursor_count")
	if rawID == "" && rawCount == "" {
		return nil, nil
	}
	if rawID == "" || rawCount == "" {
		return nil, fmt.Errorf("cursor_id and cursor_count must be provided together")
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("cursor_id must be a valid uuid")
	}

	count, err := strconv.ParseInt(rawCount, 10, 64)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("cursor_count must be a non-negative integer")
	}

	return &models.CountCursor{ID: id, Count: count}, nil
}

// parseIDParam reads a uuid path parameter.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid uuid", name)
	}
	return id, nil
}

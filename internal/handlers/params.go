package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// uuidParam parses a path parameter, answering 422 when it is not a UUID.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.Unprocessable(c, "invalid_"+name, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery parses an optional query parameter.
func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.Unprocessable(c, "invalid_"+name, name+" must be a UUID")
		return nil, false
	}
	return &id, true
}

package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// bindStrictJSON decodes the request body into v, rejecting unknown
// fields so malformed or stale payloads fail loudly instead of being
// silently stripped.
func bindStrictJSON(c *gin.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

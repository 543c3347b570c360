package controllers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"organicroots/utils"
)

// failStorage logs the raw persistence error server-side and answers with
// the mapped status and client-safe message only.
func failStorage(c *gin.Context, where string, err error) {
	log.Printf("[%s] %v", where, err)
	mapped := utils.MapStorageError(err)
	c.JSON(mapped.Status, gin.H{"error": mapped.Message})
}

// formBool returns the submitted flag, or nil when the field was omitted so
// partial updates preserve the stored value.
func formBool(c *gin.Context, key string) *bool {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	b := value == "true"
	return &b
}

// formInt is formBool for integer fields; unparseable input counts as omitted.
func formInt(c *gin.Context, key string) *int {
	value, ok := c.GetPostForm(key)
	if !ok || value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

package utils

import (
	"github.com/gin-gonic/gin"

	"red-social-api/internal/schemas"
)

// WriteAndLogResponse writes the response object as JSON with the given
// status code and logs the outcome.
func WriteAndLogResponse(c *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(c, "info", "Returning response")
	c.JSON(statusCode, response)
}

// WriteAndLogError logs the underlying error and writes the catalog
// failure as a {status, message} body with the specified status code.
func WriteAndLogError(c *gin.Context, apiErr *schemas.APIError, statusCode int, err error) {
	LogMessageWithFields(c, "error", "Error occurred: "+err.Error())
	LogMessageWithFields(c, "error", "Returning error: "+apiErr.Message)
	c.JSON(statusCode, &schemas.ErrorDTO{
		Status:  "error",
		Message: apiErr.Message,
	})
}

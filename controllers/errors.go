package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"readerspace-backend/apperrors"
	"readerspace-backend/utils"
)

// respondWithServiceError maps service errors onto status codes. Storage
// failures are reported without internal detail.
func respondWithServiceError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if apperrors.IsStorage(err) {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondWithError(c, status, "Could not access member records; the change may not have been saved")
		return
	}
	if status >= 500 {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondWithError(c, status, "Internal error")
		return
	}
	utils.RespondWithError(c, status, err.Error())
}

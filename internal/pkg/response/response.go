package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// SeeOther finishes a form POST with a redirect so a reload does not
// resubmit it.
func SeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
	c.Abort()
}

// Found is the plain redirect used by GET guards.
func Found(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) CommentDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	commentID, ok := paramUint(c, "id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid comment ID",
			"requestID": requestID,
		})
		return
	}

	if err := a.Engagement.DeleteComment(commentID, userID); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

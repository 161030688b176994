package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (a *API) CommentList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	viewerID := c.MustGet("userID").(string)

	postID, ok := paramUint(c, "id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid post ID",
			"requestID": requestID,
		})
		return
	}

	comments, err := a.Engagement.ListComments(postID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	views := make([]service.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, service.RenderComment(&comments[i], viewerID, a.Store))
	}

	c.JSON(http.StatusOK, views)
}

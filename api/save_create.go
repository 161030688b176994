package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type saveBody struct {
	PostID uint `json:"post_id" binding:"required"`
}

func (a *API) SaveCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data saveBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "post_id field is required",
			"requestID": requestID,
		})
		return
	}

	saved, err := a.Engagement.SavePost(userID, data.PostID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      saved.ID,
		"post_id": saved.PostID,
	})
}

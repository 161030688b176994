package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func (a *API) PostList(c *gin.Context) {
	viewerID := c.MustGet("userID").(string)

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := a.Query.List(viewerID, offset)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderPosts(c, posts, viewerID)
}

func (a *API) PostRecent(c *gin.Context) {
	viewerID := c.MustGet("userID").(string)

	posts, err := a.Query.Recent(viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderPosts(c, posts, viewerID)
}

package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

// The public endpoints run without a session. The empty viewer ID never
// matches a post owner, so the visibility scope only lets fully public
// content through.

func (a *API) PublicPostFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	postID, ok := paramUint(c, "id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid post ID",
			"requestID": requestID,
		})
		return
	}

	post, err := a.Posts.Get(postID, "")
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.RenderPost(post, "", nil, a.Store))
}

func (a *API) PublicUserPosts(c *gin.Context) {
	posts, err := a.Posts.ListByUser(c.Param("id"), "")
	if err != nil {
		abortWithError(c, err)
		return
	}

	views := make([]service.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, service.RenderPost(&posts[i], "", nil, a.Store))
	}

	c.JSON(http.StatusOK, views)
}

package api

import (
	"net/http"

	"snapgram/social-api/internal/model"
	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

// renderPosts resolves the viewer's bookmark set once and writes the
// post views out.
func (a *API) renderPosts(c *gin.Context, posts []model.Post, viewerID string) {
	savedIDs, err := service.SavedPostIDs(a.DB, viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	views := make([]service.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, service.RenderPost(&posts[i], viewerID, savedIDs, a.Store))
	}

	c.JSON(http.StatusOK, views)
}

package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (a *API) UserFetch(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	user, err := a.Accounts.Get(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.RenderUser(user, userID, a.Store))
}

func (a *API) UserFetchByID(c *gin.Context) {
	viewerID := c.MustGet("userID").(string)

	user, err := a.Accounts.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	// The profile record itself is visible to everyone; privacy only
	// gates the post listings reachable through it
	c.JSON(http.StatusOK, service.RenderUser(user, viewerID, a.Store))
}

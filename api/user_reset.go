package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetRequestBody struct {
	Email string `json:"email"`
}

// UserResetRequest always answers with the same body no matter whether
// the email matched an account, so it can't be used for enumeration.
func (a *API) UserResetRequest(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetRequestBody
	if err := c.ShouldBindJSON(&data); err != nil || data.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if err := a.Accounts.RequestPasswordReset(data.Email); err != nil {
		// Internal failures are logged but the response stays
		// success-shaped
		zap.L().Error("Failed to process password reset request", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If that email is registered, a reset link is on its way",
	})
}

type resetConfirmBody struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (a *API) UserResetConfirm(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetConfirmBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := a.Accounts.ResetPassword(data.Token, data.Password); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated, you can log in now",
	})
}

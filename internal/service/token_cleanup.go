package service

import (
	"time"

	"snapgram/social-api/internal/model"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup schedules a periodic job that clears expired password
// reset tokens. Expired tokens are already rejected at use time; this
// just keeps stale credentials out of the table.
func TokenCleanup(spec string, db *gorm.DB) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		res := db.Model(model.User{}).
			Where("reset_expires_at < ?", time.Now()).
			Updates(map[string]any{
				"reset_token":      nil,
				"reset_expires_at": nil,
			})
		if res.Error != nil {
			zap.L().Error("Failed to clean up expired reset tokens", zap.Error(res.Error))
			return
		}

		if res.RowsAffected > 0 {
			zap.L().Debug("Cleaned up expired reset tokens", zap.Int64("count", res.RowsAffected))
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()

	zap.L().Debug("Reset token cleanup attached", zap.String("spec", spec))

	return c, nil
}

// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"snapgram/social-api/db"
	"snapgram/social-api/internal/service"
	"snapgram/social-api/internal/storage"
	"snapgram/social-api/middleware"
	"snapgram/social-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"
	redis "github.com/go-redis/redis/v8"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store persist.CacheStore

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Store  storage.Store

	Accounts   *service.Accounts
	Posts      *service.Posts
	Engagement *service.Engagement
	Query      *service.Query
}

func NewRouter() (*API, error) {
	a := &API{}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()
	makeCacheStore()

	s3, err := storage.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	a.Store = s3

	a.Argon = security.New()

	media := service.NewMedia(s3,
		viper.GetString("storage.profile_folder"),
		viper.GetString("storage.post_folder"))

	var mail service.Mailer
	if viper.GetString("mail.sender_address") != "" {
		mail = service.NewSMTPMailer()
	}

	a.Accounts = &service.Accounts{DB: db, Argon: a.Argon, Media: media, Mail: mail}
	a.Posts = &service.Posts{DB: db, Media: media}
	a.Engagement = &service.Engagement{DB: db}
	a.Query = &service.Query{DB: db}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(db)
	maxUploadSize := viper.GetInt64("upload.max_size")
	authLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)
	}

	public := main.Group("/public")
	{
		// GET /api/public/posts/:id	-> Post detail without a session
		public.GET("/posts/:id", a.PublicPostFetch)

		// GET /api/public/users/:id/posts -> A profile's public posts
		public.GET("/users/:id/posts", a.PublicUserPosts)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(maxUploadSize))
	{
		// POST /api/users		-> Registers a new user
		users.POST("", authLimiter, a.UserRegister)

		// POST /api/users/login	-> Logs in a user and returns a JWT cookie
		users.POST("/login", authLimiter, a.UserLogin)

		// GET /api/users		-> Lists user profiles
		users.GET("", jwt, cacheFor(30), a.UserList)

		// GET /api/users/me		-> Returns the current profile
		users.GET("/me", jwt, a.UserFetch)

		// PATCH /api/users/me		-> Updates the current profile (multipart for the image)
		users.PATCH("/me", jwt, a.UserUpdate)

		// PATCH /api/users/me/privacy	-> Sets the profile privacy flag
		users.PATCH("/me/privacy", jwt, a.UserPrivacy)

		// DELETE /api/users/me		-> Deletes the account and everything it owns
		users.DELETE("/me", jwt, a.UserDelete)

		// GET /api/users/:id		-> Returns a profile by ID
		users.GET("/:id", jwt, a.UserFetchByID)

		// GET /api/users/:id/posts	-> Returns a profile's posts, visibility filtered
		users.GET("/:id/posts", jwt, a.UserPosts)

		// POST /api/users/reset	-> Requests a password reset mail
		users.POST("/reset", authLimiter, a.UserResetRequest)

		// POST /api/users/reset/confirm -> Consumes a reset token
		users.POST("/reset/confirm", authLimiter, a.UserResetConfirm)
	}

	posts := main.Group("/posts", jwt)
	{
		// GET /api/posts		-> Pages through visible posts
		posts.GET("", a.PostList)

		// GET /api/posts/recent	-> Newest visible posts
		posts.GET("/recent", cacheFor(15), a.PostRecent)

		// GET /api/posts/search	-> Searches caption, tags and location
		posts.GET("/search", a.PostSearch)

		// POST /api/posts		-> Creates a post, image optional
		posts.POST("", middleware.BodySizeLimiter(maxUploadSize), a.PostCreate)

		// GET /api/posts/:id		-> Fetches a single visible post
		posts.GET("/:id", a.PostFetch)

		// PATCH /api/posts/:id		-> Edits an owned post
		posts.PATCH("/:id", middleware.BodySizeLimiter(maxUploadSize), a.PostUpdate)

		// DELETE /api/posts/:id	-> Deletes an owned post with its comments and saves
		posts.DELETE("/:id", a.PostDelete)

		// POST /api/posts/:id/like	-> Toggles the viewer's like
		posts.POST("/:id/like", a.PostLike)

		// GET /api/posts/:id/comments	-> Lists comments, pinned first
		posts.GET("/:id/comments", a.CommentList)

		// POST /api/posts/:id/comments	-> Adds a comment
		posts.POST("/:id/comments", a.CommentCreate)
	}

	comments := main.Group("/comments", jwt)
	{
		// DELETE /api/comments/:id	-> Deletes a comment (author or post owner)
		comments.DELETE("/:id", a.CommentDelete)

		// POST /api/comments/:id/pin	-> Toggles the pin (post owner only)
		comments.POST("/:id/pin", a.CommentPin)
	}

	saves := main.Group("/saves", jwt)
	{
		// GET /api/saves		-> Lists the viewer's bookmarks
		saves.GET("", a.SaveList)

		// POST /api/saves		-> Bookmarks a post
		saves.POST("", a.SaveCreate)

		// DELETE /api/saves/:postID	-> Removes a bookmark
		saves.DELETE("/:postID", a.SaveDelete)
	}

	if spec := viper.GetString("cleanup.reset_tokens"); spec != "" {
		if _, err := service.TokenCleanup(spec, db); err != nil {
			return nil, fmt.Errorf("failed to schedule reset token cleanup, %w", err)
		}
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func makeCacheStore() {
	if addr := viper.GetString("cache.redis_address"); addr != "" {
		store = persist.NewRedisStore(redis.NewClient(&redis.Options{
			Addr: addr,
		}))
		return
	}

	store = persist.NewMemoryStore(time.Minute)
}

// cacheFor caches responses keyed per viewer, since rendered views
// differ between viewers (own email, liked/saved flags, visibility).
func cacheFor(sec int) gin.HandlerFunc {
	ttl := time.Second * time.Duration(sec)

	return cache.Cache(store, ttl, cache.WithCacheStrategyByRequest(
		func(c *gin.Context) (bool, cache.Strategy) {
			return true, cache.Strategy{
				CacheKey: c.Request.RequestURI + "|" + c.GetString("userID"),
			}
		}))
}

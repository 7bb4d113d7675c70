package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"pulsefeed-backend/internal/config"
	"pulsefeed-backend/internal/delivery/http/handler"
	"pulsefeed-backend/internal/delivery/http/middleware"
	"pulsefeed-backend/internal/metrics"
	auth_service "pulsefeed-backend/internal/service/auth"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Posts    *handler.PostHandler
	Likes    *handler.LikeHandler
	Comments *handler.CommentHandler
	Follows  *handler.FollowHandler
	Feed     *handler.FeedHandler
	Search   *handler.SearchHandler
	Media    *handler.MediaHandler
}

// NewRouter assembles the full HTTP surface. Everything except /auth
// and /healthz sits behind the token middleware.
func NewRouter(
	cfg *config.Config,
	tokens *auth_service.TokenManager,
	metricsProvider metrics.MetricsProvider,
	h Handlers,
) http.Handler {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidations()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics(metricsProvider))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static("/media", cfg.Media.Dir)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/verify-otp", h.Auth.VerifyOTP)
		auth.POST("/resend-otp", h.Auth.ResendOTP)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	authed := router.Group("/", middleware.Auth(tokens))
	{
		authed.GET("/users/me", h.Users.Me)
		authed.PUT("/users/me", h.Users.UpdateMe)
		authed.GET("/users/check-username", h.Users.CheckUsername)
		authed.GET("/users/:id", h.Users.Get)
		authed.GET("/users/:id/posts", h.Posts.ListByUser)

		authed.POST("/posts", h.Posts.Create)
		authed.GET("/posts/:id", h.Posts.Get)
		authed.PUT("/posts/:id", h.Posts.Update)
		authed.DELETE("/posts/:id", h.Posts.Delete)

		authed.POST("/likes/like", h.Likes.Like)
		authed.POST("/likes/unlike", h.Likes.Unlike)
		authed.GET("/likes/is-liked", h.Likes.IsLiked)
		authed.GET("/likes/likers", h.Likes.Likers)

		authed.POST("/comments", h.Comments.Create)
		authed.PUT("/comments/:id", h.Comments.Update)
		authed.DELETE("/comments/:id", h.Comments.Delete)
		authed.GET("/comments/list", h.Comments.ListForPost)
		authed.GET("/comments/replies", h.Comments.ListReplies)

		authed.POST("/follow", h.Follows.Follow)
		authed.POST("/unfollow", h.Follows.Unfollow)
		authed.GET("/follow/is-following", h.Follows.IsFollowing)
		authed.GET("/follow/:id/followers", h.Follows.Followers)
		authed.GET("/follow/:id/following", h.Follows.Following)
		authed.GET("/follow/suggestions", h.Follows.Suggestions)

		authed.POST("/feed/category", h.Feed.Category)
		authed.GET("/feed/home", h.Feed.Home)
		authed.GET("/feed/trending/category", h.Feed.TrendingByCategory)
		authed.POST("/feed/category/random", h.Feed.RandomByCategory)

		authed.GET("/search/users", h.Search.Users)

		authed.POST("/media/upload", h.Media.Upload)
	}

	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(router)
}

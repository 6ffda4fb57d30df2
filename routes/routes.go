// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"loopline-api/config"
	"loopline-api/controllers"
	"loopline-api/events"
	"loopline-api/middleware"
	"loopline-api/repositories"
	"loopline-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, bus *events.Bus, emailService *services.EmailService) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	reactionRepo := repositories.NewReactionRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	scoreRepo := repositories.NewScoreRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Event consumers
	bus.Subscribe(services.NewScoreService(scoreRepo).HandleEvent)
	bus.Subscribe(services.NewNotificationService(notificationRepo).HandleEvent)
	bus.Subscribe(emailService.HandleEvent)

	// Items that can carry comments and reactions, probed in this order.
	resolver := controllers.NewItemResolver(postRepo, commentRepo)

	// Controllers
	authController := controllers.NewAuthController(userRepo, sessionRepo, bus, cfg.JWTSecret)
	userController := controllers.NewUserController(userRepo, sessionRepo, postRepo, followRepo, friendRepo, bus)
	postController := controllers.NewPostController(postRepo, userRepo, followRepo, bus)
	commentController := controllers.NewCommentController(commentRepo, userRepo, resolver, bus)
	reactionController := controllers.NewReactionController(reactionRepo, userRepo, resolver, bus)
	friendController := controllers.NewFriendController(friendRepo, userRepo, bus)
	scoreController := controllers.NewScoreController(scoreRepo)
	notificationController := controllers.NewNotificationController(notificationRepo, userRepo)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes: login and logout look at the presented session when
	// there is one, but never require it.
	auth := v1.Group("/auth")
	auth.Use(middleware.OptionalAuth(sessionRepo, cfg.JWTSecret))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.Auth(sessionRepo, cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.DELETE("/profile", userController.DeleteAccount)
			users.GET("/followers", userController.GetFollowers)
			users.GET("/following", userController.GetFollowing)
			users.GET("/:id", userController.GetUser)
			users.POST("/:id/follow", userController.FollowUser)
			users.DELETE("/:id/follow", userController.UnfollowUser)
		}

		// Post routes
		posts := protected.Group("/posts")
		{
			posts.GET("/", postController.GetPosts)
			posts.POST("/", postController.CreatePost)
			posts.GET("/feed", postController.GetFeed)
			posts.GET("/:id", postController.GetPost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
		}

		// Comment and reaction routes; listings hang off the parent item
		items := protected.Group("/items")
		{
			items.GET("/:id/comments", commentController.GetItemComments)
			items.GET("/:id/reactions", reactionController.GetItemReactions)
		}

		comments := protected.Group("/comments")
		{
			comments.POST("/", commentController.CreateComment)
			comments.PUT("/:id", commentController.UpdateComment)
			comments.DELETE("/:id", commentController.DeleteComment)
		}

		reactions := protected.Group("/reactions")
		{
			reactions.POST("/", reactionController.CreateReaction)
			reactions.DELETE("/:id", reactionController.DeleteReaction)
		}

		// Friend routes, keyed by the counterpart user
		friends := protected.Group("/friends")
		{
			friends.GET("/", friendController.GetFriends)
			friends.DELETE("/:user_id", friendController.RemoveFriend)
			friends.GET("/requests", friendController.GetPendingRequests)
			friends.GET("/requests/sent", friendController.GetSentRequests)
			friends.POST("/requests/:user_id", friendController.SendFriendRequest)
			friends.DELETE("/requests/:user_id", friendController.WithdrawFriendRequest)
			friends.PUT("/requests/:user_id/accept", friendController.AcceptFriendRequest)
			friends.PUT("/requests/:user_id/reject", friendController.RejectFriendRequest)
		}

		// Score routes
		scores := protected.Group("/scores")
		{
			scores.GET("/:item_id", scoreController.GetScore)
			scores.PUT("/:item_id", scoreController.UpdateScore)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
			notifications.PUT("/:id/read", notificationController.MarkRead)
		}
	}
}

package routing

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"red-social-api/internal/config"
	"red-social-api/internal/managers"
	"red-social-api/internal/middleware"
	"red-social-api/internal/routing/handlers"
	"red-social-api/internal/schemas"
	"red-social-api/internal/stores"
	"red-social-api/internal/utils"
)

func InitRouter(databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, storageMgr managers.StorageMgr,
	jwtMgr managers.JWTMgr, cfg *config.Config) *gin.Engine {
	// Initialize router with logging and recovery middleware
	router := gin.New()
	// Initialize middleware
	setupCommonMiddleware(router, cfg)
	// Setup routes
	setupRoutes(router, databaseMgr, mailMgr, storageMgr, jwtMgr, cfg)

	return router
}

func setupCommonMiddleware(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept, Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Correlation-ID"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
	})
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr,
	storageMgr managers.StorageMgr, jwtMgr managers.JWTMgr, cfg *config.Config) {
	// Set up version route
	router.GET("/", func(c *gin.Context) {
		apiVersion := os.Getenv("API_VERSION")
		if apiVersion == "" {
			apiVersion = "main:latest"
		}
		metadata := &schemas.MetadataDTO{
			ApiVersion: apiVersion,
			ApiName:    "Red Social API",
		}
		utils.WriteAndLogResponse(c, metadata, http.StatusOK)
	})

	// Set up health route
	router.GET("/health", func(c *gin.Context) {
		if err := databaseMgr.GetPool().Ping(c); err != nil {
			c.String(http.StatusInternalServerError, "Database not responding")
			return
		}
		c.Status(http.StatusOK)
	})

	// Set up API routes
	apiRouter := router.Group("/api")
	{
		userRouter := apiRouter.Group("/user")
		userStore := stores.NewUserStore(databaseMgr.GetPool())
		userHdl := handlers.NewUserHandler(userStore, jwtMgr, mailMgr, storageMgr, cfg)
		userRoutes(userRouter, userHdl, jwtMgr)
	}
}

func userRoutes(userRouter *gin.RouterGroup, userHdl handlers.UserHdl, jwtMgr managers.JWTMgr) {
	userRouter.POST("/register", userHdl.Register)
	userRouter.POST("/login", userHdl.Login)
	// The following routes require the user to be authenticated
	userRouter.Use(jwtMgr.JWTMiddleware())
	userRouter.GET("/prueba-user", userHdl.Ping)
	userRouter.GET("/profile/:id", userHdl.Profile)
	userRouter.GET("/list", userHdl.List)
	userRouter.GET("/list/:page", userHdl.List)
	userRouter.PUT("/update", userHdl.Update)
	userRouter.POST("/upload", userHdl.Upload)
}

package app

import (
	"catalog/internal/cache"
	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/hub"
	"catalog/internal/notify"
	"catalog/internal/repo"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	// One hub for the process: every confirmed write fans out through it,
	// and the ws endpoint feeds clients into it.
	h := hub.New(cfg.WS.WriteTimeout.Duration())
	notifier := notify.New(h)
	listCache := cache.NewLists(rdb, cfg.Redis.DefaultTTL.Duration())

	r.GET("/ws/:client_id", handlers.NewWSHandler(h).Serve)

	api := r.Group("/api/v1")

	userSvc := service.NewUserService(repo.NewPGUserRepo(db), listCache, notifier)
	registerUserRoutes(api, handlers.NewUserHandler(userSvc))

	categorySvc := service.NewCategoryService(repo.NewPGCategoryRepo(db), listCache, notifier)
	registerCategoryRoutes(api, handlers.NewCategoryHandler(categorySvc))

	itemSvc := service.NewItemService(repo.NewPGItemRepo(db), listCache, notifier)
	registerItemRoutes(api, handlers.NewItemHandler(itemSvc))

	tagSvc := service.NewTagService(repo.NewPGTagRepo(db), listCache, notifier)
	registerTagRoutes(api, handlers.NewTagHandler(tagSvc))

	commentSvc := service.NewCommentService(repo.NewPGCommentRepo(db), listCache, notifier)
	registerCommentRoutes(api, handlers.NewCommentHandler(commentSvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Catalog API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
			"ws":      "/ws/{client_id}",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler) {
	api.POST("/users", h.Create)
	api.GET("/users", h.List)
	api.GET("/users/:id", h.GetByID)
	api.PATCH("/users/:id", h.Update)
	api.DELETE("/users/:id", h.Delete)
}

func registerCategoryRoutes(api *gin.RouterGroup, h *handlers.CategoryHandler) {
	api.POST("/categories", h.Create)
	api.GET("/categories", h.List)
	api.GET("/categories/:id", h.GetByID)
	api.PATCH("/categories/:id", h.Update)
	api.DELETE("/categories/:id", h.Delete)
}

func registerItemRoutes(api *gin.RouterGroup, h *handlers.ItemHandler) {
	api.POST("/items", h.Create)
	api.GET("/items", h.List)
	api.GET("/items/:id", h.GetByID)
	api.PATCH("/items/:id", h.Update)
	api.DELETE("/items/:id", h.Delete)
	api.GET("/items/:id/tags", h.Tags)
	api.POST("/items/:id/tags/:tag_id", h.AttachTag)
	api.DELETE("/items/:id/tags/:tag_id", h.DetachTag)
}

func registerTagRoutes(api *gin.RouterGroup, h *handlers.TagHandler) {
	api.POST("/tags", h.Create)
	api.GET("/tags", h.List)
	api.GET("/tags/:id", h.GetByID)
	api.PATCH("/tags/:id", h.Update)
	api.DELETE("/tags/:id", h.Delete)
}

func registerCommentRoutes(api *gin.RouterGroup, h *handlers.CommentHandler) {
	api.POST("/comments", h.Create)
	api.GET("/comments", h.List)
	api.GET("/comments/:id", h.GetByID)
	api.PATCH("/comments/:id", h.Update)
	api.DELETE("/comments/:id", h.Delete)
}

package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"portfolio/api/internal/config"
	"portfolio/api/internal/middleware"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
	"portfolio/api/internal/service"
	"portfolio/api/internal/storage"
)

type ContactStore interface {
	Create(ctx context.Context, submission models.ContactSubmission) error
	List(ctx context.Context) ([]models.ContactSubmission, error)
}

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	blog     *service.BlogService
	media    *service.MediaService
	contacts ContactStore
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	contactRepo := repository.NewContactRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	auth := service.NewAuthService(userRepo, sessionRepo, cfg, log)
	blog := service.NewBlogService(postRepo, categoryRepo, log)
	media := service.NewMediaService(mediaRepo, store, cfg, log)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     auth,
		blog:     blog,
		media:    media,
		contacts: contactRepo,
		db:       db,
		cache:    cache,
	}
}

// AuthService exposes the session layer for startup tasks (seeding, cron).
func (h HandlerSet) AuthService() *service.AuthService {
	return h.auth
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	router.Use(middleware.Session(h.auth, h.cfg.Session.CookieName, h.log))

	router.POST("/login",
		middleware.RateLimit(h.cache, "login", h.cfg.RateLimit.LoginAttempts, h.cfg.RateLimit.Window),
		h.Login,
	)
	router.POST("/logout", h.Logout)
	router.GET("/user", h.CurrentUser)

	router.POST("/contact",
		middleware.RateLimit(h.cache, "contact", h.cfg.RateLimit.ContactRequests, h.cfg.RateLimit.Window),
		h.SubmitContact,
	)
	router.GET("/contact", middleware.RequireAdmin(), h.ListContactSubmissions)

	blog := router.Group("/blog")
	{
		blog.GET("", h.ListPublishedPosts)
		blog.GET("/categories", h.ListCategories)
		blog.GET("/category/:slug", h.ListPostsByCategory)
		blog.GET("/:slug", h.GetPostBySlug)
	}

	admin := router.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/blog", h.AdminListPosts)
		admin.POST("/blog", h.CreatePost)
		admin.PUT("/blog/:id", h.UpdatePost)
		admin.DELETE("/blog/:id", h.DeletePost)
		admin.POST("/blog/:id/category/:categoryId", h.AddCategoryToPost)
		admin.DELETE("/blog/:id/category/:categoryId", h.RemoveCategoryFromPost)

		admin.POST("/category", h.CreateCategory)
		admin.PUT("/category/:id", h.UpdateCategory)
		admin.DELETE("/category/:id", h.DeleteCategory)

		admin.POST("/media", h.UploadMedia)
	}
}

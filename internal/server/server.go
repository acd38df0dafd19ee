package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/config"
	"github.com/meet-community/meet-backend/internal/middleware"
	"github.com/meet-community/meet-backend/pkg/mailer"

	blogHttp "github.com/meet-community/meet-backend/internal/modules/blog/delivery/http"
	blogRepo "github.com/meet-community/meet-backend/internal/modules/blog/repository"
	blogService "github.com/meet-community/meet-backend/internal/modules/blog/service"

	commentHttp "github.com/meet-community/meet-backend/internal/modules/comment/delivery/http"
	commentRepo "github.com/meet-community/meet-backend/internal/modules/comment/repository"
	commentService "github.com/meet-community/meet-backend/internal/modules/comment/service"

	profileHttp "github.com/meet-community/meet-backend/internal/modules/profile/delivery/http"
	profileService "github.com/meet-community/meet-backend/internal/modules/profile/service"

	resetHttp "github.com/meet-community/meet-backend/internal/modules/reset/delivery/http"
	resetRepo "github.com/meet-community/meet-backend/internal/modules/reset/repository"
	resetService "github.com/meet-community/meet-backend/internal/modules/reset/service"

	searchService "github.com/meet-community/meet-backend/internal/modules/search/service"

	taxonomyHttp "github.com/meet-community/meet-backend/internal/modules/taxonomy/delivery/http"
	taxonomyRepo "github.com/meet-community/meet-backend/internal/modules/taxonomy/repository"
	taxonomyService "github.com/meet-community/meet-backend/internal/modules/taxonomy/service"

	userHttp "github.com/meet-community/meet-backend/internal/modules/user/delivery/http"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	userService "github.com/meet-community/meet-backend/internal/modules/user/service"

	voteHttp "github.com/meet-community/meet-backend/internal/modules/vote/delivery/http"
	voteRepo "github.com/meet-community/meet-backend/internal/modules/vote/repository"
	voteService "github.com/meet-community/meet-backend/internal/modules/vote/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

// Repositories groups the persistence interfaces the router is wired with,
// so tests can swap in in-memory implementations.
type Repositories struct {
	Users         userRepo.UserRepository
	Blogs         blogRepo.BlogRepository
	Comments      commentRepo.CommentRepository
	Votes         voteRepo.VoteRepository
	Categories    taxonomyRepo.CategoryRepository
	Tags          taxonomyRepo.TagRepository
	Verifications resetRepo.VerificationRepository
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, meiliClient meilisearch.ServiceManager) *Server {
	repos := Repositories{
		Users:         userRepo.NewUserRepository(db),
		Blogs:         blogRepo.NewBlogRepository(db),
		Comments:      commentRepo.NewCommentRepository(db),
		Votes:         voteRepo.NewVoteRepository(db),
		Categories:    taxonomyRepo.NewCategoryRepository(db),
		Tags:          taxonomyRepo.NewTagRepository(db),
		Verifications: resetRepo.NewVerificationRepository(db),
	}

	router := NewRouter(cfg, repos, redisClient, meiliClient, mailer.NewSMTPMailer(cfg))

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func NewRouter(cfg *config.Config, repos Repositories, redisClient *redis.Client, meiliClient meilisearch.ServiceManager, mail mailer.Mailer) *gin.Engine {
	users := repos.Users
	blogs := repos.Blogs
	comments := repos.Comments
	votes := repos.Votes
	categories := repos.Categories
	tags := repos.Tags
	verifications := repos.Verifications

	authSvc := userService.NewAuthService(users, cfg)
	authHandler := userHttp.NewAuthHandler(authSvc)

	taxonomySvc := taxonomyService.NewService(categories, tags, users)
	taxonomyHandler := taxonomyHttp.NewTaxonomyHandler(taxonomySvc)

	searchSvc := searchService.NewService(meiliClient)

	voteSvc := voteService.NewService(votes, blogs, users, redisClient)
	voteHandler := voteHttp.NewVoteHandler(voteSvc)

	blogSvc := blogService.NewService(blogs, users, categories, tags, voteSvc, searchSvc)
	blogHandler := blogHttp.NewBlogHandler(blogSvc)

	commentSvc := commentService.NewService(comments, blogs, users)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	profileSvc := profileService.NewService(users, blogs, blogSvc, votes, comments)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	resetSvc := resetService.NewService(verifications, users, mail)
	resetHandler := resetHttp.NewResetHandler(resetSvc)

	router := gin.New()
	setupCORS(router, cfg)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"healthy": true})
	})

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	auth := api.Group("/auth")
	{
		auth.GET("/google/login", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	api.POST("/categories", taxonomyHandler.CreateCategory)
	api.GET("/categories", taxonomyHandler.GetAllCategories)
	api.POST("/categories/:id", taxonomyHandler.FollowCategory)
	api.DELETE("/categories/:id", taxonomyHandler.UnfollowCategory)

	api.POST("/tags", taxonomyHandler.CreateTag)
	api.GET("/tags", taxonomyHandler.GetAllTags)
	api.POST("/tags/:id", taxonomyHandler.FollowTag)
	api.DELETE("/tags/:id", taxonomyHandler.UnfollowTag)

	api.POST("/posts", blogHandler.CreateBlog)
	api.GET("/posts", blogHandler.GetBlogs)
	api.GET("/posts/search", blogHandler.SearchBlogs)
	api.GET("/posts/:id", blogHandler.GetBlog)

	api.POST("/vote", voteHandler.ToggleVote)
	api.POST("/comments", commentHandler.CreateComment)

	api.GET("/profile", profileHandler.GetProfile)
	api.GET("/reset-password", resetHandler.SendCode)
	api.POST("/reset-password", resetHandler.VerifyCode)
	api.PUT("/reset-password", resetHandler.ResetPassword)

	// Profile mutations and follow edges need a valid bearer token.
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.PUT("/profile", profileHandler.UpdateInfo)
		protected.PUT("/profile/avatar", profileHandler.UpdateAvatar)
		protected.PUT("/profile/banner", profileHandler.UpdateBanner)
		protected.POST("/follow/:id", profileHandler.FollowUser)
		protected.DELETE("/follow/:id", profileHandler.UnfollowUser)
	}

	return router
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

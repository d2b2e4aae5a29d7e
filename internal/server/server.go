package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shashoo/internal/config"
	"shashoo/internal/handler"
	"shashoo/internal/middleware"
	"shashoo/internal/model"
	"shashoo/internal/repository"
	"shashoo/internal/storage"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
}

func Init(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("Connected to database")

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	boardAccessRepo := repository.NewBoardAccessRepository(db)
	postRepo := repository.NewPostRepository(db)

	// Initialize handlers
	jwtExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	authHandler := handler.NewAuthHandler(userRepo, cfg.JWTSecret, jwtExpiry)
	registrationHandler := handler.NewRegistrationHandler(registrationRepo)
	userAdminHandler := handler.NewUserAdminHandler(userRepo)
	boardHandler := handler.NewBoardHandler(boardRepo, boardAccessRepo)
	boardAccessHandler := handler.NewBoardAccessHandler(userRepo, boardRepo, boardAccessRepo)
	postHandler := handler.NewPostHandler(postRepo, boardRepo, boardAccessRepo, store)

	// Public routes
	r.POST("/auth/login", authHandler.Login)
	r.POST("/registrations", registrationHandler.Create)

	// Protected routes - require an approved account
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired(cfg.JWTSecret, userRepo))
	{
		authorized.GET("/me", authHandler.Me)

		// Board routes
		authorized.GET("/boards", boardHandler.List)
		authorized.GET("/boards/:id", boardHandler.GetByID)

		// Post routes
		authorized.GET("/boards/:id/posts", postHandler.ListByBoard)
		authorized.POST("/boards/:id/posts", postHandler.Create)
		authorized.GET("/posts/:id", postHandler.GetByID)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.GET("/attachments/:id/download", postHandler.DownloadAttachment)
	}

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret, userRepo), middleware.AdminRequired())
	{
		admin.POST("/boards", boardHandler.Create)
		admin.PUT("/boards/:id", boardHandler.Update)
		admin.DELETE("/boards/:id", boardHandler.Delete)

		admin.GET("/admin/registrations", registrationHandler.List)
		admin.PATCH("/admin/registrations/:id", registrationHandler.Decide)

		admin.GET("/admin/users", userAdminHandler.List)
		admin.POST("/admin/users", userAdminHandler.Create)
		admin.PATCH("/admin/users/:id/role", userAdminHandler.Update)

		admin.GET("/admin/board-access", boardAccessHandler.Get)
		admin.PUT("/admin/board-access", boardAccessHandler.Update)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

// migrate creates the schema. Foreign key cascade rules live in the model
// tags: board and author deletion cascade into posts, attachments and
// embeds; reviewer deletion nulls the registration reference.
func migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.User{},
		&model.Registration{},
		&model.Board{},
		&model.BoardAccess{},
		&model.Post{},
		&model.Attachment{},
		&model.YoutubeEmbed{},
	)
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info().Str("port", s.Config.ServerPort).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatal().Err(err).Msg("Failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	s.Log.Info().Msg("Server exited properly")
}

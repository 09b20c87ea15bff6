package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timetrack/internal/config"
	"timetrack/internal/handler"
	"timetrack/internal/middleware"
	"timetrack/internal/model"
	"timetrack/internal/repository"
	"timetrack/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.TimeEntry{},
		&model.Comment{},
		&model.Activity{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	clock := service.SystemClock()
	activitySvc := service.NewActivityService(activityRepo, taskRepo, clock)
	taskSvc := service.NewTaskService(taskRepo, timeEntryRepo, userRepo, activitySvc, clock)
	timeEntrySvc := service.NewTimeEntryService(timeEntryRepo, taskRepo, activitySvc, clock)
	commentSvc := service.NewCommentService(commentRepo, taskRepo, activitySvc, clock)
	reportSvc := service.NewReportService(timeEntryRepo)
	userSvc := service.NewUserService(userRepo, cfg.AdminEmails, clock)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, userSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	timeEntryHandler := handler.NewTimeEntryHandler(timeEntrySvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	reportHandler := handler.NewReportHandler(reportSvc)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userSvc))
	{
		// Profile routes
		authorized.GET("/me", userHandler.Me)
		authorized.GET("/me/summary", timeEntryHandler.Summary)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.POST("/tasks/:id/assign", taskHandler.AssignUser)
		authorized.DELETE("/tasks/:id/assign", taskHandler.UnassignUser)
		authorized.POST("/tasks/:id/due-date", taskHandler.SetDueDate)
		authorized.POST("/tasks/:id/status", taskHandler.UpdateStatus)
		authorized.POST("/tasks/:id/complete", taskHandler.Complete)

		// Comment and activity routes
		authorized.POST("/tasks/:id/comments", commentHandler.Create)
		authorized.GET("/tasks/:id/comments", commentHandler.List)
		authorized.GET("/tasks/:id/activities", activityHandler.List)

		// Time entry routes
		authorized.POST("/time-entries/start", timeEntryHandler.Start)
		authorized.POST("/time-entries/:id/stop", timeEntryHandler.Stop)
		authorized.GET("/time-entries/active", timeEntryHandler.Active)

		// Report routes
		authorized.GET("/reports/time-totals", reportHandler.TimeTotals)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}

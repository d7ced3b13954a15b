package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/careerpal/internal/config"
	"github.com/Abraxas-365/careerpal/pkg/fiberx"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/user/userapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}
	logx.Init(logx.Config{Level: logx.ParseLevel(cfg.Log.Level), Format: cfg.Log.Format})
	logx.Info("Starting CareerPal API Server...")

	// 2. Dependency container
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	container := NewContainer(ctx, cfg)
	defer container.Close()

	// 3. Background scrape workers
	container.ScrapeWorker.Start(ctx)

	// 4. Fiber app
	app := newApp(container)

	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// 5. Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logx.Info("Shutting down server...")

	stop()
	container.ScrapeWorker.Wait()

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	logx.Info("Server exited")
}

func newApp(container *Container) *fiber.App {
	cfg := container.Config

	app := fiber.New(fiber.Config{
		AppName:               "CareerPal API",
		DisableStartupMessage: true,
		ErrorHandler:          fiberx.ErrorHandler,
		// multipart overhead on top of the document itself
		BodyLimit: cfg.MaxUploadBytes + 1<<20,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, HEAD",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(ctx) == nil,
			"redis":  container.Redis.Ping(ctx).Err() == nil,
		})
	})

	// Auth and users: /api/v1/auth/*, /api/v1/users/*
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)

	// Resumes: /api/v1/resumes/*
	container.ResumeHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// Jobs: /api/v1/jobs/*
	container.JobHandlers.RegisterRoutes(app, container.AuthMiddleware)

	return app
}

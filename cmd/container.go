package main

import (
	"context"

	"github.com/Abraxas-365/careerpal/internal/ai/embeddings"
	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/internal/config"
	"github.com/Abraxas-365/careerpal/internal/database"
	"github.com/Abraxas-365/careerpal/internal/document"
	"github.com/Abraxas-365/careerpal/pkg/fsx"
	"github.com/Abraxas-365/careerpal/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/job/jobapi"
	"github.com/Abraxas-365/careerpal/recruitment/job/jobinfra"
	"github.com/Abraxas-365/careerpal/recruitment/job/jobscraper"
	"github.com/Abraxas-365/careerpal/recruitment/job/jobsrv"
	"github.com/Abraxas-365/careerpal/recruitment/job/worker"
	"github.com/Abraxas-365/careerpal/recruitment/resume/resumeapi"
	"github.com/Abraxas-365/careerpal/recruitment/resume/resumeinfra"
	"github.com/Abraxas-365/careerpal/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/careerpal/recruitment/user/userapi"
	"github.com/Abraxas-365/careerpal/recruitment/user/userauth"
	"github.com/Abraxas-365/careerpal/recruitment/user/userinfra"
	"github.com/Abraxas-365/careerpal/recruitment/user/usersrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	scrapeQueueName = "careerpal:scrape"
	scrapeRunPrefix = "careerpal:scrape_run"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem

	// Services
	Tokens        *userauth.TokenService
	UserService   *usersrv.Service
	ResumeService *resumesrv.Service
	JobService    *jobsrv.Service

	// Background
	ScrapeWorker *worker.ScrapeWorker

	// API Handlers
	UserHandlers   *userapi.Handlers
	ResumeHandlers *resumeapi.ResumeHandlers
	JobHandlers    *jobapi.Handlers

	// Middleware
	AuthMiddleware fiber.Handler
}

// NewContainer connects infrastructure, runs migrations and wires the services
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure(ctx)
	c.initServices()
	return c
}

func (c *Container) initInfrastructure(ctx context.Context) {
	// 1. Database
	db, err := database.Connect(ctx, c.Config.Database.URL)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		logx.Fatalf("Failed to migrate database: %v", err)
	}
	c.DB = db

	// 2. Redis
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       0,
	})
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. S3 compatible storage
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.Storage.Region))
	if err != nil {
		logx.Fatalf("Unable to load AWS config: %v", err)
	}
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Config.Storage.Endpoint != "" {
			o.BaseEndpoint = &c.Config.Storage.Endpoint
			o.UsePathStyle = true
		}
	})
	c.FileSystem = fsxs3.NewS3FileSystem(s3Client, c.Config.Storage.Bucket, c.Config.Storage.Prefix)
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	resumeRepo := resumeinfra.NewPostgresResumeRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	scrapeQueue := jobinfra.NewRedisQueue(c.Redis, scrapeQueueName)
	runStore := jobinfra.NewRedisRunStore(c.Redis, scrapeRunPrefix, jobinfra.DefaultRunTTL)

	// --- AI ---
	completer := llm.NewClient(llm.Options{
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		Model:             cfg.LLM.Model,
		Timeout:           cfg.LLM.Timeout,
		Retry:             cfg.LLM.Retry,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	})
	embedder := embeddings.NewGenerator(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.EmbeddingModel)

	// --- Scraper ---
	scraper, err := jobscraper.New(jobscraper.Options{
		BaseURL:           cfg.Scraper.BaseURL,
		MaxPages:          cfg.Scraper.MaxPages,
		RequestsPerMinute: cfg.Scraper.RequestsPerMinute,
	})
	if err != nil {
		logx.Fatalf("Failed to configure scraper: %v", err)
	}

	// --- Domain Services ---
	c.Tokens = userauth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
	c.UserService = usersrv.NewService(userRepo, c.Tokens, userauth.NewBcryptHasher(bcrypt.DefaultCost))
	c.ResumeService = resumesrv.NewService(
		resumeRepo,
		c.FileSystem,
		document.NewExtractor(),
		completer,
		cfg.Storage.SignedURLTTL,
	)
	c.JobService = jobsrv.NewService(jobRepo, scrapeQueue, runStore, scraper, embedder, c.ResumeService)
	c.ScrapeWorker = worker.NewScrapeWorker(c.JobService, scrapeQueue, cfg.Scraper.Workers)

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService, int64(cfg.MaxUploadBytes))
	c.JobHandlers = jobapi.NewHandlers(c.JobService)

	// --- Middleware ---
	c.AuthMiddleware = userauth.Middleware(c.Tokens)
}

// Close releases pooled connections
func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Failed to close Redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Failed to close database: %v", err)
	}
}

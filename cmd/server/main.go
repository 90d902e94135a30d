package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/foodlab/foodlab-api/internal/config"
	"github.com/foodlab/foodlab-api/internal/database"
	"github.com/foodlab/foodlab-api/internal/handler"
	"github.com/foodlab/foodlab-api/internal/middleware"
	"github.com/foodlab/foodlab-api/internal/queue"
	"github.com/foodlab/foodlab-api/internal/repository"
	"github.com/foodlab/foodlab-api/internal/router"
	"github.com/foodlab/foodlab-api/internal/service"
)

func main() {
	// Optional .env for local development; deployed environments set real
	// environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	chefs := repository.NewChefRepo(db)
	tokens := repository.NewTokenRepo(db)
	users := repository.NewUserRepo(db)
	categories := repository.NewCategoryRepo(db)
	courses := repository.NewCourseRepo(db)
	sessions := repository.NewSessionRepo(db)
	recipes := repository.NewRecipeRepo(db)
	enrollments := repository.NewEnrollmentRepo(db)
	reports := repository.NewReportRepo(db)

	// Services.
	scheduler := service.NewSchedulerService(courses, sessions, categories, recipes)
	ledger := service.NewLedgerStore(enrollments, courses)
	enrollSvc := service.NewEnrollmentService(ledger, users, courses)
	reportSvc := service.NewReportService(reports, chefs)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, chefs, tokens)
	chefH := handler.NewChefHandler(courses, sessions, recipes, users, scheduler, enrollSvc, reportSvc)
	publicH := handler.NewPublicHandler(categories, courses, sessions, enrollments)

	e := echo.New()
	e.HideBanner = true

	// Distributed rate limiting.  A nil Redis client degrades to a no-op so
	// the API keeps serving when Redis is down.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	catalogueCache := middleware.NewCatalogueCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, catalogueCache)
	router.RegisterChef(e, chefH, cfg.JWTSecret)
	router.RegisterChefEnrollments(e, chefH, cfg.JWTSecret)
	router.RegisterChefReports(e, chefH, cfg.JWTSecret)

	// Audit trail consumer: drains enrollment events into logs/enrollment.log.
	// It reconnects on broker failure and never blocks request handling.
	go func() {
		if err := queue.StartEnrollmentConsumer(); err != nil {
			log.Printf("enrollment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

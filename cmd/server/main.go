package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"ashare_analyst/internal/app/di"
	"ashare_analyst/internal/app/router"
	analysishandler "ashare_analyst/internal/feature/analysis/transport/handler"
	authhandler "ashare_analyst/internal/feature/auth/transport/handler"
	authusecase "ashare_analyst/internal/feature/auth/usecase"
	reportadapters "ashare_analyst/internal/feature/reports/adapters"
	reportshandler "ashare_analyst/internal/feature/reports/transport/handler"
	reportsusecase "ashare_analyst/internal/feature/reports/usecase"
	infradb "ashare_analyst/internal/platform/db"
	jwtmw "ashare_analyst/internal/platform/jwt"
	infraredis "ashare_analyst/internal/platform/redis"
)

const tokenLifetime = 12 * time.Hour

func main() {
	ctx := context.Background()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfig())
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Market data + analysis tools
	market := di.NewMarket(rdb)
	analysisUC := di.NewAnalysisUsecases(ctx, market)

	// Report archive
	reportRepo := reportadapters.NewReportRepository(db)
	reportsUC := reportsusecase.NewReportsUsecase(reportRepo)

	// Auth
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	generator := jwtmw.NewGenerator(secret, tokenLifetime)
	authUC := authusecase.NewAuthUsecase(authusecase.LoadCredentials(), generator)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	analysisH := analysishandler.NewAnalysisHandler(analysisUC, reportsUC)
	reportsH := reportshandler.NewReportsHandler(reportsUC)

	r := router.NewRouter(authH, analysisH, reportsH)
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"os"

	"estate-portal-server/logger"
	"estate-portal-server/metrics"
	"estate-portal-server/routes"
	"estate-portal-server/services"
	"estate-portal-server/storage"
	"estate-portal-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	if err := logger.InitLogger(); err != nil {
		panic(err)
	}
	log := logger.GetLogger()

	db := storage.InitializeDB()
	storage.InitializeRedis()
	cache := storage.NewListingCache(storage.Redis)

	routes.Initialize(db, cache)

	app := iris.New()
	utils.Validate = validator.New()
	app.Validator = utils.Validate

	app.UseRouter(utils.RequestIDMiddleware)
	app.Use(metrics.Middleware)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	routes.Register(app, accessTokenVerifierMiddleware)
	app.Post("/api/auth/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	app.Get("/metrics", metrics.Handler())
	app.Get("/healthz", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// periodic price auto-apply sweep (threshold is configuration)
	scheduler := cron.New()
	services.NewAutoApplySweeper(db, cache).Schedule(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Info("estate portal listening", zap.String("port", port))
	app.Listen(":" + port)
}

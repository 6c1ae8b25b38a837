package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/agoralabs/agora/config"
	"github.com/agoralabs/agora/internal/api/v1/handlers"
	"github.com/agoralabs/agora/internal/api/v1/middleware"
	v1 "github.com/agoralabs/agora/internal/api/v1/routes"
	"github.com/agoralabs/agora/internal/constants"
	"github.com/agoralabs/agora/internal/db"
	"github.com/agoralabs/agora/internal/db/repos"
	"github.com/agoralabs/agora/internal/logger"
	"github.com/agoralabs/agora/internal/services"
	"github.com/agoralabs/agora/internal/twitter"
)

func main() {
	// .env is optional; env vars may be set externally
	_ = godotenv.Load()

	logger.InitializeAndConfigure()

	jwtSecret := os.Getenv(constants.EnvJWTSecret)
	if jwtSecret == "" {
		logger.Fatalf("%s must be set", constants.EnvJWTSecret)
	}

	verifierID, err := strconv.ParseUint(config.GetEnv(constants.EnvVerifierUserID, "0"), 10, 32)
	if err != nil || verifierID == 0 {
		logger.Fatalf("%s must be set to a valid user ID", constants.EnvVerifierUserID)
	}

	dbPort, err := strconv.Atoi(config.GetEnv(constants.EnvDBPort, "5432"))
	if err != nil {
		logger.Fatalf("invalid %s: %v", constants.EnvDBPort, err)
	}

	database, err := db.New(db.Options{
		Host:       os.Getenv(constants.EnvDBHost),
		Port:       dbPort,
		User:       os.Getenv(constants.EnvDBUser),
		Password:   os.Getenv(constants.EnvDBPassword),
		DBName:     os.Getenv(constants.EnvDBName),
		VerifierID: uint(verifierID),
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	profiles := twitter.NewClient(
		os.Getenv(constants.EnvTwitterAPIBase),
		os.Getenv(constants.EnvTwitterBearer),
	)

	agentRepo := repos.NewAgentRepository(database)
	offerRepo := repos.NewOfferRepository(database)
	jobRepo := repos.NewJobRepository(database)
	tokenRepo := repos.NewAccessTokenRepository(database)

	agentService := services.NewAgentService(agentRepo, profiles)
	offerService := services.NewOfferService(offerRepo, agentService)
	jobService := services.NewJobService(jobRepo, agentRepo, uint(verifierID))
	tokenService := services.NewTokenService(tokenRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(middleware.Logger())

	v1.RegisterRoutes(app,
		v1.Config{
			JWTSecret: []byte(jwtSecret),
			Tokens:    tokenService,
		},
		handlers.NewAgentHandler(agentService, offerService),
		handlers.NewJobHandler(jobService),
		handlers.NewTokenHandler(tokenService),
	)

	addr := config.GetEnv(constants.EnvListenAddress, ":"+v1.DefaultPort)
	logger.Infof("listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// This file is a development utility for minting session tokens.
// How to run:
// go run cmd/sessions/main.go -username alice                          # Print a session token for an existing user
// go run cmd/sessions/main.go -username alice -create -handle alice_x  # Create the user first if needed
// go run cmd/sessions/main.go -username alice -ttl 72h                 # Custom token lifetime
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/agoralabs/agora/config"
	"github.com/agoralabs/agora/internal/auth"
	"github.com/agoralabs/agora/internal/constants"
	"github.com/agoralabs/agora/internal/db"
	"github.com/agoralabs/agora/internal/db/models"
	"github.com/agoralabs/agora/internal/db/repos"
)

func main() {
	// .env is optional; env vars may be set externally
	_ = godotenv.Load()

	var (
		username = flag.String("username", "", "Username to issue a session for")
		handle   = flag.String("handle", "", "Twitter handle to record when creating the user")
		email    = flag.String("email", "", "Email to record when creating the user")
		create   = flag.Bool("create", false, "Create the user if it does not exist")
		ttl      = flag.Duration("ttl", auth.DefaultSessionTTL, "Session token lifetime")
	)
	flag.Parse()

	if *username == "" {
		log.Fatal("-username is required")
	}

	jwtSecret := os.Getenv(constants.EnvJWTSecret)
	if jwtSecret == "" {
		log.Fatalf("%s must be set", constants.EnvJWTSecret)
	}

	dbPort, err := strconv.Atoi(config.GetEnv(constants.EnvDBPort, "5432"))
	if err != nil {
		log.Fatalf("invalid %s: %v", constants.EnvDBPort, err)
	}

	database, err := db.New(db.Options{
		Host:     os.Getenv(constants.EnvDBHost),
		Port:     dbPort,
		User:     os.Getenv(constants.EnvDBUser),
		Password: os.Getenv(constants.EnvDBPassword),
		DBName:   os.Getenv(constants.EnvDBName),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()
	users := repos.NewUserRepository(database)

	user, err := users.GetUserByUsername(ctx, *username)
	if err != nil {
		if !*create {
			log.Fatalf("failed to look up user %q (use -create to create it): %v", *username, err)
		}
		user = &models.User{
			Username:      *username,
			Email:         *email,
			TwitterHandle: *handle,
		}
		if err := users.CreateUser(ctx, user); err != nil {
			log.Fatalf("failed to create user %q: %v", *username, err)
		}
		log.Printf("Created user %q (ID: %d)", user.Username, user.ID)
	}

	token, err := auth.IssueSession([]byte(jwtSecret), user, *ttl)
	if err != nil {
		log.Fatalf("failed to issue session: %v", err)
	}

	log.Printf("Session for %q (ID: %d) valid for %s", user.Username, user.ID, *ttl)
	fmt.Println(token)
}

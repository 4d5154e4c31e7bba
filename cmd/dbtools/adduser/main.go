// cmd/dbtools/adduser/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/accresults/internal/api/auth"
	"github.com/codr1/accresults/internal/db"
	dbgen "github.com/codr1/accresults/internal/db/generated"
)

// adduser creates a user that can sign in to the team administration pages.
// The password is read from ACCRESULTS_PASSWORD so it stays out of shell history.
func main() {
	var (
		dbPath = flag.String("db", "", "Path to SQLite database")
		email  = flag.String("email", "", "Email address used to sign in")
		first  = flag.String("first", "", "First name")
		last   = flag.String("last", "", "Last name")
		admin  = flag.Bool("admin", true, "Grant administrator access")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	password := os.Getenv("ACCRESULTS_PASSWORD")
	if *dbPath == "" || strings.TrimSpace(*email) == "" || password == "" {
		fmt.Fprintln(os.Stderr, "-db, -email and ACCRESULTS_PASSWORD are required:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	database, err := db.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := database.Queries.CreateUser(ctx, dbgen.CreateUserParams{
		FirstName:    strings.TrimSpace(*first),
		LastName:     strings.TrimSpace(*last),
		Email:        strings.TrimSpace(*email),
		PasswordHash: hash,
		IsAdmin:      *admin,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Fatal().Str("email", *email).Msg("A user with this email already exists")
		}
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Bool("is_admin", user.IsAdmin).Msg("User created")
}

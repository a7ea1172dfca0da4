package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/db"
	"github.com/prestigebuild/siteapi/internal/domain/user"
	repo "github.com/prestigebuild/siteapi/internal/repo/mongo"
	"github.com/prestigebuild/siteapi/internal/security"
)

// Interactive bootstrap for the first admin account. Runs against the same
// database the API uses; further admins can be created through the API.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)

	if err != nil {
		fail("database connection failed", err)
	}

	defer func() {
		_ = database.Client().Disconnect(context.Background())
	}()

	if err := db.EnsureIndexes(ctx, database); err != nil {
		fail("index creation failed", err)
	}

	reader := bufio.NewReader(os.Stdin)

	username := prompt(reader, "Username")

	if len(username) < 3 {
		fail("username must be at least 3 characters", nil)
	}

	email := prompt(reader, "Email")

	if _, err := mail.ParseAddress(email); err != nil {
		fail("invalid email address", err)
	}

	password := promptPassword("Password")

	if len(password) < 8 {
		fail("password must be at least 8 characters", nil)
	}

	confirm := promptPassword("Confirm password")

	if password != confirm {
		fail("passwords do not match", nil)
	}

	hash, err := security.HashPassword(password)

	if err != nil {
		fail("could not hash password", err)
	}

	users := repo.NewUsersRepo(database, nil)

	u, err := users.Create(ctx, username, email, hash, "admin")

	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			fail("username already in use", nil)
		}
		if errors.Is(err, user.ErrEmailTaken) {
			fail("email already in use", nil)
		}
		fail("could not create admin", err)
	}

	fmt.Printf("Admin account %q created (id %s)\n", u.Username, u.ID.Hex())
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)

	line, err := reader.ReadString('\n')

	if err != nil {
		fail("could not read input", err)
	}

	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Printf("%s: ", label)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()

	if err != nil {
		fail("could not read password", err)
	}

	return strings.TrimSpace(string(raw))
}

func fail(msg string, err error) {
	if err != nil {
		slog.Error(msg, "error", err)
	} else {
		slog.Error(msg)
	}

	os.Exit(1)
}

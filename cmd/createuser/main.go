// Command createuser provisions an account directly in the user store.
//
//	createuser -username alice -password s3cret -first Alice -last Smith -email alice@example.com
//	createuser -username root -password s3cret -admin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
	"github.com/foodforms/questionnaire/internal/core/service"
	mongostore "github.com/foodforms/questionnaire/internal/infrastructure/db/mongo"
	"github.com/foodforms/questionnaire/internal/pkg/config"
	"github.com/foodforms/questionnaire/pkg/logger"
)

func main() {
	var in ports.RegisterInput
	var admin bool
	flag.StringVar(&in.Username, "username", "", "login name (required)")
	flag.StringVar(&in.Password, "password", "", "password (required)")
	flag.StringVar(&in.FirstName, "first", "", "first name")
	flag.StringVar(&in.LastName, "last", "", "last name")
	flag.StringVar(&in.Email, "email", "", "email address")
	flag.BoolVar(&admin, "admin", false, "create an administrator")
	flag.Parse()

	if in.Username == "" || in.Password == "" {
		flag.Usage()
		os.Exit(2)
	}
	in.Role = domain.RoleUser
	if admin {
		in.Role = domain.RoleAdministrator
	}

	if err := run(in); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in ports.RegisterInput) error {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "createuser"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	auth := service.NewAuthService(mongostore.NewUserRepository(db), nil, cfg.SessionSecret, cfg.SessionTTL, log)
	user, err := auth.Register(ctx, in)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return errors.New("user already exists")
	case err != nil:
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("created %s %s (%s)\n", user.Role, user.Username, user.ID)
	return nil
}

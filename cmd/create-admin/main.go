package main

import (
	"context"                           // Context for the store calls
	"flag"                              // Command line flags
	"os"                                // Environment fallback for the password
	"project_showcase/internal/config"  // Custom import path (Config)
	"project_showcase/internal/db"      // Custom import path (Database)
	"project_showcase/internal/service" // Custom import path (Business rules)
	"project_showcase/internal/store"   // Custom import path (Persistence)

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point: creates the root admin account, or promotes it with -promote
func main() {
	name := flag.String("name", "Administrator", "display name used when the account is created")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password used when the account is created")
	promote := flag.Bool("promote", false, "promote an already registered account with the root admin email")
	flag.Parse()

	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect and make sure the schema exists
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	svc := service.New(store.New(gdb), service.Options{
		RootAdminEmail: cfg.RootAdminEmail, // Account to create or promote
		JWTSecret:      cfg.JWTSecret,      // Unused here but required by config
	})
	user, created, err := svc.EnsureRootAdmin(context.Background(), *name, *password, *promote)
	if err != nil {
		logrus.Fatalf("failed to set up root admin: %v", err)
	}
	// Report what happened
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,    // Admin ID
		"email":   user.Email, // Admin email
		"created": created,    // false when an existing account was kept or promoted
	}).Info("Root admin ready")
}

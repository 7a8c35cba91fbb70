package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"hr-recruitment/internal/app"
	"hr-recruitment/internal/config"
	"hr-recruitment/internal/database/migration"
	"hr-recruitment/internal/database/seeder"
)

func main() {
	seed := flag.Bool("seed", false, "insert default HR users and job titles after migrating")
	adminPassword := flag.String("admin-password", "", "password for the seeded admin account")
	hrPassword := flag.String("hr-password", "", "password for the seeded HR account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	r := migration.Runner{FS: c.MigrationsFS(), Logger: logger}
	n, err := r.Run(ctx, c.DB.SQLDB())
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Printf("migrations applied: %d", n)

	if !*seed {
		return
	}

	runner := seeder.Runner{Seeders: seeder.Defaults(c.HashPassword, *adminPassword, *hrPassword), Logger: logger}
	if err := runner.Run(ctx, c.DB); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed data ensured")
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"clientbook/internal/auth"
	"clientbook/internal/config"
	"clientbook/internal/repository"
	"clientbook/internal/server"
	"clientbook/internal/version"

	"github.com/joho/godotenv"
)

const usage = "Usage: clientbook <indexes|remind|token|feedback|version>"

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}
	_ = godotenv.Load()
	cfg := config.New()
	ctx := context.Background()

	switch os.Args[1] {
	case "indexes":
		iCmd := flag.NewFlagSet("indexes", flag.ExitOnError)
		uri := iCmd.String("uri", cfg.Mongo.URI, "MongoDB URI")
		db := iCmd.String("db", cfg.Mongo.Database, "Database name")
		iCmd.Parse(os.Args[2:])

		client, err := server.Connect(ctx, *uri)
		if err != nil {
			log.Fatalf("Connect error: %v", err)
		}
		defer client.Disconnect(ctx)
		if err := repository.EnsureIndexes(ctx, client.Database(*db)); err != nil {
			log.Fatalf("Index error: %v", err)
		}
		fmt.Println(">> Indexes ensured")

	case "remind":
		rCmd := flag.NewFlagSet("remind", flag.ExitOnError)
		timeout := rCmd.Duration("timeout", 5*time.Minute, "Sweep timeout")
		rCmd.Parse(os.Args[2:])

		srv := mustServer(cfg)
		defer srv.Close()
		sweepCtx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		stats, err := srv.Services().Reminders.Run(sweepCtx)
		if err != nil {
			log.Fatalf("Reminder error: %v", err)
		}
		printJSON(stats)

	case "token":
		tCmd := flag.NewFlagSet("token", flag.ExitOnError)
		uid := tCmd.String("uid", "", "User ID")
		email := tCmd.String("email", "", "User e-mail")
		name := tCmd.String("name", "", "Display name")
		tCmd.Parse(os.Args[2:])

		if *uid == "" {
			log.Fatal("--uid required")
		}
		v, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		if err != nil {
			log.Fatalf("Token error: %v", err)
		}
		token, err := v.Issue(auth.Identity{UID: *uid, Email: *email, Name: *name})
		if err != nil {
			log.Fatalf("Token error: %v", err)
		}
		fmt.Println(token)

	case "feedback":
		fCmd := flag.NewFlagSet("feedback", flag.ExitOnError)
		limit := fCmd.Int("n", 20, "Entries to show")
		fCmd.Parse(os.Args[2:])

		srv := mustServer(cfg)
		defer srv.Close()
		all, err := srv.Services().Feedback.ListAll(ctx)
		if err != nil {
			log.Fatalf("Feedback error: %v", err)
		}
		if *limit > 0 && len(all) > *limit {
			all = all[:*limit]
		}
		for _, f := range all {
			fmt.Printf("%s  %d/5  %-30s %s\n", f.CreatedAt.Format(time.RFC3339), f.Rating, f.UserEmail, f.Comment)
		}

	case "version":
		fmt.Println(version.Get())

	default:
		log.Fatal(usage)
	}
}

func mustServer(cfg *config.Config) *server.Server {
	// the CLI never serves, so the scheduler stays off
	cfg.Reminder.Enabled = false
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open backends: %v", err)
	}
	return srv
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Encode error: %v", err)
	}
}

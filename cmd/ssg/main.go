package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	domainerr "ssg/internal/domain/errors"
	"ssg/internal/logfields"
)

func main() {
	// a missing .env is the normal case
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ssg"),
		kong.Description("Static site generator for TOML front-matter posts."),
		kong.UsageOnError(),
	)
	if err := kctx.Run(&Global{Ctx: ctx}, &cli); err != nil {
		attrs := []any{slog.String("command", kctx.Command()), logfields.Error(err)}
		if key := domainerr.KeyOf(err); key != "" {
			attrs = append(attrs, logfields.Key(key))
		}
		slog.Error("command failed", attrs...)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matt-steen/project-tracker/pkg/config"
	"github.com/matt-steen/project-tracker/pkg/controller"
	"github.com/matt-steen/project-tracker/pkg/store"
	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		panic(err)
	}

	dirPerms := 0o755
	if err := os.MkdirAll(filepath.Dir(cfg.DBFile), fs.FileMode(dirPerms)); err != nil {
		panic(err)
	}

	filePerms := 0o666

	logFile, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	log.Logger = log.With().Caller().Logger().Level(level).Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Msg("starting application...")

	st, err := store.Open(ctx, cfg.DBFile)
	if err != nil {
		panic(err)
	}

	defer st.Close()

	users := tracker.NewDirectory(st)
	auth := tracker.NewAuth(st, users)
	projects := tracker.NewRepository(st, auth)

	controller, err := controller.NewController(ctx, auth, users, projects)
	if err != nil {
		panic(err)
	}

	controller.Go()
}

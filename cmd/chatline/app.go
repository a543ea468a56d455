package main

import (
	"context"
	"os"
	"time"

	"chatline/config"
	"chatline/internal/blob"
	chatRepository "chatline/internal/chat/repository"
	identityRepository "chatline/internal/identity/repository"
	identityUsecase "chatline/internal/identity/usecase"
	"chatline/internal/livequery"
	messageRepository "chatline/internal/message/repository"
	profileRepository "chatline/internal/profile/repository"
	profileUsecase "chatline/internal/profile/usecase"
	"chatline/internal/session"
	"chatline/internal/storage"
	"chatline/pkg/logger"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// app is everything one CLI invocation wires together.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *bun.DB
	notifier livequery.Notifier
	renderer *terminalRenderer
	manager  *session.Manager

	closers []func() error
}

func newApp(ctx context.Context, configName string) (*app, error) {
	v, err := config.LoadConfig(configName)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init logger")
	}

	a := &app{cfg: cfg, log: log, renderer: newTerminalRenderer(os.Stdout)}
	a.closers = append(a.closers, func() error { _ = log.Sync(); return nil })

	db, err := storage.NewPostgres(ctx, cfg.Database.DSN)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	if cfg.Redis.URL != "" {
		rn, err := livequery.NewRedisNotifier(cfg.Redis.URL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.notifier = rn
		a.closers = append(a.closers, rn.Close)
	} else {
		log.Warn("redis url not set, live updates limited to this process")
		a.notifier = livequery.NewMemoryNotifier()
	}

	blobs, err := blob.NewFileStore(cfg.Blob.Dir, cfg.Blob.BaseURL)
	if err != nil {
		a.Close()
		return nil, err
	}

	profiles := profileUsecase.NewProfileUsecase(profileRepository.NewProfileRepository(db, *log), blobs, *log, *cfg)
	identities := identityUsecase.NewIdentityUsecase(identityRepository.NewAccountRepository(db, *log), *log)

	a.manager = session.NewManager(
		identities,
		profiles,
		chatRepository.NewConversationRepository(db, *log),
		messageRepository.NewMessageRepository(db, *log),
		a.notifier,
		a.renderer,
		*log,
		*cfg,
	)
	return a, nil
}

func (a *app) migrate(ctx context.Context) error {
	if err := storage.CreateSchema(ctx, a.db); err != nil {
		return err
	}
	a.log.Info("schema up to date")
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", "err", err)
		}
	}
}

var timeNow = time.Now

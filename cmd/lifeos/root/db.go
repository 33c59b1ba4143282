package root

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AlexZhen345/LifeOS/internal/community"
	"github.com/AlexZhen345/LifeOS/internal/config"
	"github.com/AlexZhen345/LifeOS/internal/engine"
	"github.com/AlexZhen345/LifeOS/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	path := cfg.Storage.Path
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cfg, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, *config.Config, func(), error) {
	db, cfg, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	svc := engine.NewService(db)
	// Fold a pre-account single-user document into the account list, once.
	if _, err := svc.AccountStore().MigrateLegacy(ctx); err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return svc, cfg, cleanup, nil
}

func communityService(svc *engine.Service) *community.Service {
	return community.NewService(svc.KV())
}

// currentAccount resolves the active account id, erroring with a hint when
// no account exists yet.
func currentAccount(ctx context.Context, svc *engine.Service) (string, error) {
	id, err := svc.AccountStore().CurrentID(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("no account selected; run `lifeos account create <name>` first")
	}
	return id, nil
}

// currentAuthor resolves the active account as a community author.
func currentAuthor(ctx context.Context, svc *engine.Service) (community.Author, error) {
	id, err := currentAccount(ctx, svc)
	if err != nil {
		return community.Author{}, err
	}
	data, err := svc.UserDataRepo().Load(ctx, id)
	if err != nil {
		return community.Author{}, err
	}
	name := id
	if data != nil && data.Profile.Name != "" {
		name = data.Profile.Name
	}
	return community.Author{ID: id, Name: name, Avatar: "🙂"}, nil
}

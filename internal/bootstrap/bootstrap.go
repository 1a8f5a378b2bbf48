package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"cloud.google.com/go/firestore"
	kms "cloud.google.com/go/kms/apiv1"
	"firebase.google.com/go/v4/auth"

	vertexclient "github.com/GregMSThompson/luongnho/internal/client/vertex"
	"github.com/GregMSThompson/luongnho/internal/config"
	"github.com/GregMSThompson/luongnho/internal/localstore"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

type Bootstrap struct {
	Log           *slog.Logger
	HTTPClient    *http.Client
	Firestore     *firestore.Client
	Firebase      *auth.Client
	KMS           *kms.KeyManagementClient
	VertexAdapter *vertexclient.Adapter
	SQLite        *sql.DB
}

// Run connects the GCP clients. Vertex is optional: when it cannot be
// created the suggestion endpoints fall back to fixed answers.
func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := newBootstrap(cfg)

	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	if cfg.KMSKeyName != "" {
		bs.KMS, err = kms.NewKeyManagementClient(applicationCtx)
		if err != nil {
			return bs, err
		}
	} else {
		bs.Log.Warn("KMSKEYNAME not set, account numbers stored unencrypted")
	}

	bs.VertexAdapter, err = vertexclient.NewAdapter(applicationCtx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
	if err != nil {
		bs.Log.Warn("vertex unavailable, suggestions disabled", "error", err)
		bs.VertexAdapter = nil
	}

	return bs, nil
}

// RunLocal opens the sqlite database instead of any cloud service.
func RunLocal(cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := newBootstrap(cfg)

	bs.SQLite, err = localstore.Open(cfg.SQLitePath)
	if err != nil {
		return bs, err
	}
	bs.Log.Info("local store ready", "path", cfg.SQLitePath)
	return bs, nil
}

func newBootstrap(cfg *config.Config) *Bootstrap {
	return &Bootstrap{
		Log:        logger.New(cfg.LogLevel, logger.NewCloudRunHandler),
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.VertexAdapter != nil {
		errList = append(errList, bs.VertexAdapter.Close())
	}
	if bs.KMS != nil {
		errList = append(errList, bs.KMS.Close())
	}
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	if bs.SQLite != nil {
		errList = append(errList, bs.SQLite.Close())
	}
	return errors.Join(errList...)
}

package cartstate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

type fileRepo struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewFile stores one JSON document per key under dir. Writes go to a temp
// file that is renamed over the target, so readers never see a torn record.
func NewFile(dir string, logger *zap.SugaredLogger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &fileRepo{dir: dir, logger: logger}, nil
}

func (r *fileRepo) path(key string) string {
	return filepath.Join(r.dir, url.PathEscape(key)+".json")
}

func (r *fileRepo) Load(_ context.Context, key string) (domain.Cart, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Cart{}, domain.ErrNotFound
		}
		r.logger.Warnw("cartstate file: load failed", "key", key, "error", err)
		return domain.Cart{}, err
	}
	return Decode(data)
}

func (r *fileRepo) Save(_ context.Context, key string, cart domain.Cart) error {
	data, err := Encode(cart)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(r.dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path(key)); err != nil {
		return fmt.Errorf("rename cart file: %w", err)
	}
	r.logger.Debugw("cartstate file: saved", "key", key, "items", len(cart.Items))
	return nil
}

func (r *fileRepo) Ping(context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", r.dir)
	}
	return nil
}

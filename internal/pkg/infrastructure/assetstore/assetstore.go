package assetstore

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("asset not found")

// Store keeps bitstream bytes outside of the database.
type Store interface {
	Store(ctx context.Context, r io.Reader) (internalID string, size int64, checksum string, err error)
	Retrieve(ctx context.Context, internalID string) (io.ReadCloser, error)
	Delete(ctx context.Context, internalID string) error
}

// New returns a Store rooted at dir. An empty dir gives a new temporary directory.
func New(dir string) (Store, error) {
	var err error

	if dir == "" {
		dir, err = os.MkdirTemp("", "assetstore")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary asset store: %w", err)
		}
	} else if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset store %s: %w", dir, err)
	}

	return &diskStore{root: dir}, nil
}

type diskStore struct {
	root string
}

func (s *diskStore) Store(ctx context.Context, r io.Reader) (string, int64, string, error) {
	internalID := strings.ReplaceAll(uuid.NewString(), "-", "")

	path, err := s.path(internalID)
	if err != nil {
		return "", 0, "", err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", 0, "", fmt.Errorf("failed to create asset directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", 0, "", fmt.Errorf("failed to create asset: %w", err)
	}
	defer f.Close()

	hash := md5.New()
	size, err := io.Copy(f, io.TeeReader(r, hash))
	if err != nil {
		os.Remove(path)
		return "", 0, "", fmt.Errorf("failed to write asset: %w", err)
	}

	checksum := hex.EncodeToString(hash.Sum(nil))

	log := logging.GetFromContext(ctx)
	log.Debug().Str("internalID", internalID).Int64("size", size).Msg("stored asset")

	return internalID, size, checksum, nil
}

func (s *diskStore) Retrieve(ctx context.Context, internalID string) (io.ReadCloser, error) {
	path, err := s.path(internalID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}

	return f, err
}

func (s *diskStore) Delete(ctx context.Context, internalID string) error {
	path, err := s.path(internalID)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}

	return err
}

// path splits the id into three levels of two character directories.
func (s *diskStore) path(internalID string) (string, error) {
	if len(internalID) < 7 || strings.ContainsAny(internalID, `/\.`) {
		return "", fmt.Errorf("invalid internal id %q", internalID)
	}

	return filepath.Join(s.root, internalID[0:2], internalID[2:4], internalID[4:6], internalID), nil
}

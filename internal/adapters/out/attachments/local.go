// Package attachments implements ports.AttachmentStore on the local
// filesystem and on Google Cloud Storage.
package attachments

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/datauri"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/logger"
)

var _ ports.AttachmentStore = (*LocalStore)(nil)

// LocalStore writes attachments under a directory that the HTTP server
// exposes at baseURL.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errs.NewValueIsRequiredError("dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Store(ctx context.Context, payload string, category ports.AttachmentCategory) (string, error) {
	if datauri.IsReference(payload) {
		return strings.TrimSpace(payload), nil
	}

	data, err := decode(payload)
	if err != nil {
		return "", err
	}

	key := objectKey(category, data)
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}

	tmp := target + ".part"
	if err = os.WriteFile(tmp, data.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	if err = os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("move attachment into place: %w", err)
	}

	logger.Debugw(ctx, "attachment stored", "key", key, "bytes", len(data.Bytes))
	return s.baseURL + "/" + key, nil
}

func (s *LocalStore) Usage(_ context.Context) (ports.StorageUsage, error) {
	var usage ports.StorageUsage
	err := filepath.WalkDir(s.dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || strings.HasSuffix(d.Name(), ".part") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		usage.Bytes += info.Size()
		usage.Objects++
		return nil
	})
	if err != nil {
		return ports.StorageUsage{}, fmt.Errorf("scan attachment dir: %w", err)
	}
	return usage, nil
}

func decode(payload string) (datauri.Data, error) {
	data, err := datauri.Decode(payload)
	if err != nil {
		return datauri.Data{}, errs.NewValueIsInvalidErrorWithCause("attachment", err)
	}
	return data, nil
}

// objectKey is "<category>/<uuid><ext>". Every call gets a fresh name, so a
// retried upload never overwrites an earlier one.
func objectKey(category ports.AttachmentCategory, data datauri.Data) string {
	return path.Join(string(category), kernel.NewUUID().String()+data.Extension())
}

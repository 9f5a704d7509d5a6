package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"hotspot-portal-svc/src/internal/config"
	"hotspot-portal-svc/src/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Store persists uploaded images in a flat directory. Stored names carry a
// second-granularity timestamp prefix so a descending sort is newest-first,
// plus a random suffix so same-named files saved in the same second never
// collide.
type Store interface {
	Save(src io.Reader, originalName string) (string, error)
	ListImages() ([]string, error)
	CountImages() (int, error)
	Resolve(name string) (string, error)
	EnsureDir() error
}

type store struct {
	dir string
}

func NewStore(cfg *config.StorageConfig) Store {
	return &store{dir: cfg.UploadDir}
}

func (s *store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", models.ErrUploadDirUnavailable, err)
	}
	return nil
}

func (s *store) Save(src io.Reader, originalName string) (string, error) {
	stored := StoredName(originalName, time.Now())

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"original": originalName,
		"stored":   stored,
	}).Debug("Upload saved")

	return stored, nil
}

func (s *store) ListImages() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload directory: %w", err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if imageExtensions[ext] {
			images = append(images, entry.Name())
		}
	}

	// Newest first via the timestamp prefix
	sort.Sort(sort.Reverse(sort.StringSlice(images)))
	return images, nil
}

func (s *store) CountImages() (int, error) {
	images, err := s.ListImages()
	if err != nil {
		return 0, err
	}
	return len(images), nil
}

// Resolve maps a stored filename to its path, rejecting anything that could
// escape the upload directory.
func (s *store) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", models.ErrUnsafeFilename
	}

	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// StoredName builds the on-disk name: timestamp prefix, short random
// suffix, then the sanitized original name.
func StoredName(originalName string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s",
		now.Format("20060102_150405"),
		uuid.NewString()[:8],
		SanitizeFilename(originalName))
}

// SanitizeFilename strips path components and collapses every run of
// characters outside [A-Za-z0-9._-] to a single underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	pendingSep := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}

	cleaned := b.String()
	if strings.Trim(cleaned, "._-") == "" {
		return "upload"
	}
	return cleaned
}

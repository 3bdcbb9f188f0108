package photo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrPhotoNotFound indicates the photo doesn't exist.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrMissingPath indicates a photo with no file path.
	ErrMissingPath = errors.New("photo file path required")
)

// Photo is the metadata for one progress photo. The image file itself is
// captured and stored by the platform layer; only the pointer lives here.
type Photo struct {
	ID       string `json:"id"`
	TakenAt  int64  `json:"takenAt"`
	FilePath string `json:"filePath"`
	Note     string `json:"note,omitempty"`
}

// Store is the persistence port for photo metadata.
type Store interface {
	SavePhoto(ctx context.Context, p Photo) error
	ListPhotos(ctx context.Context) ([]Photo, error)
	DeletePhoto(ctx context.Context, id string) error
}

// Service handles progress-photo metadata.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new photo service.
func NewService(store Store, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, logger: logger, now: now}
}

// Add registers a progress photo taken at the current instant.
func (s *Service) Add(ctx context.Context, filePath, note string) (*Photo, error) {
	if filePath == "" {
		return nil, ErrMissingPath
	}
	p := Photo{
		ID:       uuid.NewString(),
		TakenAt:  s.now().UnixMilli(),
		FilePath: filePath,
		Note:     note,
	}
	if err := s.store.SavePhoto(ctx, p); err != nil {
		return nil, fmt.Errorf("saving photo: %w", err)
	}
	s.logger.Info("progress photo added", "id", p.ID)
	return &p, nil
}

// List returns all photos, oldest first, for a progress timeline.
func (s *Service) List(ctx context.Context) ([]Photo, error) {
	photos, err := s.store.ListPhotos(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(photos, func(i, j int) bool {
		return photos[i].TakenAt < photos[j].TakenAt
	})
	return photos, nil
}

// Delete removes a photo's metadata.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeletePhoto(ctx, id)
}

package ports

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/folio/portfolio/internal/domain/entities"
)

// Common repository errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrCacheMiss = errors.New("cache miss")
)

// ContentRepository defines the operations every list-stored content type supports
type ContentRepository[T entities.Record] interface {
	List(ctx context.Context) ([]T, error)
	Featured(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id int, apply func(T) error) (T, error)
	Delete(ctx context.Context, id int) error
	Reorder(ctx context.Context, ids []int) ([]T, error)
}

// ContactInfoRepository defines access to the singleton contact details document
type ContactInfoRepository interface {
	Get(ctx context.Context) (*entities.ContactInfo, error)
	Save(ctx context.Context, info *entities.ContactInfo) error
	Update(ctx context.Context, apply func(*entities.ContactInfo) error) (*entities.ContactInfo, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	HealthCheck(ctx context.Context) error
}

// GitHubClient reads public repository data from GitHub
type GitHubClient interface {
	ListUserRepos(ctx context.Context, username string) ([]entities.GitHubRepo, error)
	FindShowcaseImage(ctx context.Context, owner, repo string) (entities.ShowcaseImage, error)
}

// MediaStore persists uploaded project media and returns its public URL
type MediaStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

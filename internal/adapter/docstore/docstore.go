// Package docstore provides the document persistence primitives the
// application is written against: get, merge/replace set, delete and list.
// Documents are flat JSON-like maps addressed by slash-separated paths such
// as "users/alice/progress/quizzes", where the final segment is the document
// id and the prefix is its collection.
package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nplqhub/revise/internal/entity"
)

// Document is the persisted shape. Values survive a JSON round trip, so
// numbers read back as float64 and nested structures as map[string]any.
type Document map[string]any

// Entry pairs a document id with its data when listing a collection.
type Entry struct {
	ID   string
	Data Document
}

// Store is the remote document store boundary. Set with merge updates only
// the supplied top-level fields; without merge it replaces the document.
// Implementations convert transport failures to entity.ErrStoreUnavailable.
type Store interface {
	Get(ctx context.Context, path string) (Document, bool, error)
	Set(ctx context.Context, path string, doc Document, merge bool) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, collection string) ([]Entry, error)
}

// Migrator is implemented by stores that need schema setup before first use.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// opTimeout bounds every store round trip so a dead backend degrades to
// ErrStoreUnavailable instead of a stalled loading state.
const opTimeout = 10 * time.Second

func splitPath(path string) (collection, id string, err error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || len(segments)%2 != 0 {
		return "", "", fmt.Errorf("document path must have an even number of segments: %q", path)
	}
	for _, seg := range segments {
		if seg == "" {
			return "", "", fmt.Errorf("document path has an empty segment: %q", path)
		}
	}
	return strings.Join(segments[:len(segments)-1], "/"), segments[len(segments)-1], nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, entity.ErrStoreUnavailable, err)
}

// Merge overlays src's top-level fields onto dst, returning dst.
func Merge(dst, src Document) Document {
	if dst == nil {
		dst = Document{}
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

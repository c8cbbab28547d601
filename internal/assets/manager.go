// Package assets fetches model and texture files and decodes them into scene objects.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/logger"
)

var (
	// ErrNotFound is returned when no source has the requested asset.
	ErrNotFound = errors.New("asset not found")
	// ErrUnsupportedCompression is returned for compressed primitives with no registered decoder.
	ErrUnsupportedCompression = errors.New("unsupported mesh compression")
)

// Poster delivers functions to the main thread.
type Poster interface {
	Post(fn func())
}

// Manager handles asset loading from an ordered set of sources.
type Manager struct {
	sources []Source
	cache   *Cache
	poster  Poster
	log     *zap.Logger
}

// NewManager creates a new asset manager. Async results are delivered through poster.
func NewManager(poster Poster, sources ...Source) *Manager {
	return &Manager{
		sources: sources,
		cache:   NewCache(),
		poster:  poster,
		log:     logger.Named("assets"),
	}
}

// Cache returns the manager's byte cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Load loads a file from the sources; later sources take priority. Concurrent loads of
// the same path share one fetch.
func (m *Manager) Load(ctx context.Context, assetPath string) ([]byte, error) {
	return m.cache.Do(assetPath, func() ([]byte, error) {
		return m.fetch(ctx, assetPath)
	})
}

func (m *Manager) fetch(ctx context.Context, assetPath string) ([]byte, error) {
	sources := m.sources
	var lastErr error
	for i := len(sources) - 1; i >= 0; i-- {
		data, err := sources[i].Open(ctx, assetPath)
		if err == nil {
			m.log.Debug("loaded asset",
				zap.String("path", assetPath),
				zap.Stringer("source", sources[i]),
				zap.Int("bytes", len(data)))
			return data, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, ErrNotFound) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%s: %w", assetPath, ErrNotFound)
}

// Go runs work on a background goroutine and delivers done on the main thread unless ctx
// was cancelled in the meantime. A result that is not delivered goes to drop instead,
// when drop is non-nil, so its owner can release it.
func (m *Manager) Go(ctx context.Context, wg *sync.WaitGroup, work func(ctx context.Context) (any, error), done func(any, error), drop func(any)) {
	if wg != nil {
		wg.Add(1)
	}
	discard := func(result any) {
		if drop != nil && result != nil {
			drop(result)
		}
	}
	go func() {
		if wg != nil {
			defer wg.Done()
		}
		result, err := work(ctx)
		if ctx.Err() != nil {
			discard(result)
			return
		}
		m.poster.Post(func() {
			if ctx.Err() != nil {
				discard(result)
				return
			}
			done(result, err)
		})
	}()
}

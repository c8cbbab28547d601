package assets

import (
	"context"
	"image"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
	"github.com/Faultbox/portfolio-room/internal/logger"
)

// Loader turns fetched bytes into scene graphs and textures. Each room instance owns one
// loader; closing it cancels everything still in flight and releases mesh decoders.
type Loader struct {
	manager  *Manager
	decoders map[string]PrimitiveDecoder

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
	log    *zap.Logger
}

// NewLoader creates a loader on top of a shared manager.
func NewLoader(m *Manager) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		manager:  m,
		decoders: make(map[string]PrimitiveDecoder),
		ctx:      ctx,
		cancel:   cancel,
		log:      logger.Named("assets"),
	}
}

// RegisterDecoder installs a decoder for primitives carrying the named glTF extension,
// such as "KHR_draco_mesh_compression".
func (l *Loader) RegisterDecoder(extension string, d PrimitiveDecoder) {
	l.decoders[extension] = d
}

// LoadModel fetches and decodes a model synchronously.
func (l *Loader) LoadModel(ctx context.Context, assetPath string) (*scene.Node, error) {
	data, err := l.manager.Load(ctx, assetPath)
	if err != nil {
		return nil, err
	}
	return ParseModel(data, l.decoders)
}

// LoadModelAsync fetches and decodes a model in the background. cb runs on the main thread
// and is never called after Close; a model decoded too late is disposed instead.
func (l *Loader) LoadModelAsync(assetPath string, cb func(*scene.Node, error)) {
	l.manager.Go(l.ctx, &l.wg, func(ctx context.Context) (any, error) {
		return l.LoadModel(ctx, assetPath)
	}, func(result any, err error) {
		root, _ := result.(*scene.Node)
		cb(root, err)
	}, func(result any) {
		if root, ok := result.(*scene.Node); ok {
			scene.Dispose(root)
		}
	})
}

// LoadTexture returns a texture immediately and fills in its image when the fetch
// completes. Failures are logged and leave the texture unloaded.
func (l *Loader) LoadTexture(assetPath string, opts texture.Options) *texture.Texture {
	tex := texture.New(assetPath, opts)
	l.loadInto(tex, assetPath)
	return tex
}

func (l *Loader) loadInto(tex *texture.Texture, assetPath string) {
	l.manager.Go(l.ctx, &l.wg, func(ctx context.Context) (any, error) {
		data, err := l.manager.Load(ctx, assetPath)
		if err != nil {
			return nil, err
		}
		return texture.Decode(data)
	}, func(result any, err error) {
		if err != nil {
			l.log.Warn("texture failed to load", zap.String("path", assetPath), zap.Error(err))
			return
		}
		if img, ok := result.(image.Image); ok {
			tex.SetImage(img)
		}
	}, nil)
}

// LoadCubeTexture loads the six faces of an environment map from dir. files lists the
// face file names in px, nx, py, ny, pz, nz order.
func (l *Loader) LoadCubeTexture(dir string, files [6]string) *texture.Cube {
	cube := texture.NewCube(strings.TrimSuffix(dir, "/"))
	for i, f := range files {
		l.loadInto(cube.Faces[i], strings.TrimSuffix(dir, "/")+"/"+f)
	}
	return cube
}

// Close cancels outstanding loads, waits for their goroutines and releases decoders.
// Calling it more than once is a no-op.
func (l *Loader) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.cancel()
	l.wg.Wait()
	for ext, d := range l.decoders {
		if c, ok := d.(io.Closer); ok {
			if err := c.Close(); err != nil {
				l.log.Warn("closing decoder", zap.String("extension", ext), zap.Error(err))
			}
		}
	}
	l.decoders = nil
}

// Closed reports whether Close has been called.
func (l *Loader) Closed() bool {
	return l.closed
}

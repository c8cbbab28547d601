package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Frame is a bottom-up RGBA readback of the default framebuffer.
type Frame struct {
	Pixels        []byte
	Width, Height int
}

// Image returns the frame as a top-down image.
func (f Frame) Image() (*image.RGBA, error) {
	stride := f.Width * 4
	if f.Width <= 0 || f.Height <= 0 || len(f.Pixels) != stride*f.Height {
		return nil, fmt.Errorf("frame %dx%d does not match %d bytes", f.Width, f.Height, len(f.Pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		src := f.Pixels[(f.Height-1-row)*stride:]
		copy(img.Pix[row*img.Stride:row*img.Stride+stride], src[:stride])
	}
	return img, nil
}

// Snapshots writes frames as PNG files named <prefix>_<timestamp>.png.
// Shots taken within the same second get a numeric suffix.
type Snapshots struct {
	dir    string
	prefix string
	now    func() time.Time

	last string
	seq  int
}

func NewSnapshots(dir, prefix string) *Snapshots {
	return &Snapshots{dir: dir, prefix: prefix, now: time.Now}
}

// Save encodes the frame and returns the written path.
func (s *Snapshots) Save(f Frame) (string, error) {
	img, err := f.Image()
	if err != nil {
		return "", err
	}
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("screenshot dir: %w", err)
		}
	}

	path := s.nextPath()
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("screenshot file: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, out.Close()
}

func (s *Snapshots) nextPath() string {
	stamp := s.now().Format("2006-01-02_15-04-05")
	name := s.prefix + "_" + stamp
	if stamp == s.last {
		s.seq++
		name = fmt.Sprintf("%s_%d", name, s.seq)
	} else {
		s.last, s.seq = stamp, 0
	}
	return filepath.Join(s.dir, name+".png")
}

package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/vvsong/internal/lyrics"
	"github.com/desertthunder/vvsong/internal/shared"
)

// Session is a scoped handle on the external converter: a private LibreOffice
// user profile and an output directory. A Session must be closed; Close
// removes both directories.
type Session struct {
	root   string
	closed bool
}

// OpenSession creates the directories for one conversion.
func OpenSession() (*Session, error) {
	root, err := os.MkdirTemp("", "vvsong-convert-")
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %v", shared.ErrConverter, err)
	}
	for _, dir := range []string{"profile", "out"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o700); err != nil {
			os.RemoveAll(root)
			return nil, fmt.Errorf("%w: create session: %v", shared.ErrConverter, err)
		}
	}
	return &Session{root: root}, nil
}

// ProfileDir is the LibreOffice user installation used by this session only,
// so a conversion never attaches to a user's running office instance.
func (s *Session) ProfileDir() string { return filepath.Join(s.root, "profile") }

// OutDir receives converted files.
func (s *Session) OutDir() string { return filepath.Join(s.root, "out") }

// Close releases the session. It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return os.RemoveAll(s.root)
}

// Converter turns a legacy presentation into a .pptx inside the session's
// output directory and returns the converted file's path.
type Converter interface {
	Convert(ctx context.Context, s *Session, src string) (string, error)
}

// SofficeConverter converts with a headless LibreOffice process.
type SofficeConverter struct {
	Binary  string
	Timeout time.Duration
}

// Convert implements [Converter]. The process (and its children) is killed
// when the timeout or the context expires.
func (c *SofficeConverter) Convert(ctx context.Context, s *Session, src string) (string, error) {
	binary := c.Binary
	if binary == "" {
		binary = "soffice"
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrConverter, err)
	}

	cmd := exec.CommandContext(ctx, binary,
		"-env:UserInstallation="+fileURL(s.ProfileDir()),
		"--headless", "--invisible", "--nologo", "--norestore",
		"--convert-to", "pptx",
		"--outdir", s.OutDir(),
		abs,
	)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = 5 * time.Second
	killProcessGroup(cmd)

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s timed out after %s", shared.ErrConverter, binary, c.Timeout)
		}
		return "", fmt.Errorf("%w: %s: %v: %s", shared.ErrConverter, binary, err, strings.TrimSpace(output.String()))
	}

	converted := filepath.Join(s.OutDir(), strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))+".pptx")
	if _, err := os.Stat(converted); err != nil {
		return "", fmt.Errorf("%w: no output for %s: %s", shared.ErrConverter, filepath.Base(abs), strings.TrimSpace(output.String()))
	}
	return converted, nil
}

// fileURL converts a local path to the file:// form LibreOffice expects.
func fileURL(p string) string {
	p = filepath.ToSlash(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}

// PPT reads legacy presentations by converting them to .pptx first.
//
// One conversion runs at a time; the external office process is not safe for
// concurrent use.
type PPT struct {
	mu        sync.Mutex
	converter Converter
}

// NewPPT creates a legacy reader backed by converter.
func NewPPT(converter Converter) *PPT {
	return &PPT{converter: converter}
}

// Extract implements [Extractor].
func (p *PPT) Extract(ctx context.Context, path string) ([]lyrics.Slide, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	session, err := OpenSession()
	if err != nil {
		return nil, err
	}
	defer session.Close()

	converted, err := p.converter.Convert(ctx, session, path)
	if err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(converted)
	if err != nil {
		return nil, fmt.Errorf("%w: converted file: %v", shared.ErrCorruptSource, err)
	}
	defer zr.Close()

	return ReadPPTX(ctx, &zr.Reader)
}

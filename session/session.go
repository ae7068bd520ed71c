// Package session writes generated artifacts for one run. It resolves
// destination conflicts, caps filename length, and records a manifest
// of every path written so the next run can delete artifacts that are
// no longer generated.
package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// maxFilenameLen caps generated filenames. Template-heavy C++ names
// expand into paths that overflow common filesystem limits.
const maxFilenameLen = 150

// DefaultManifestName is the manifest filename used when Options does
// not override it.
const DefaultManifestName = ".biohazrd-manifest"

// ConflictPolicy controls what happens when two writes resolve to the
// same destination path.
type ConflictPolicy int

const (
	// RenameOnConflict disambiguates the later path with a numeric
	// suffix before the extension.
	RenameOnConflict ConflictPolicy = iota
	// ErrorOnConflict rejects the later write.
	ErrorOnConflict
)

// Options configures a Session.
type Options struct {
	// Root is the output directory. Created if missing.
	Root string
	// OnConflict selects the destination conflict policy.
	OnConflict ConflictPolicy
	// ManifestName overrides DefaultManifestName.
	ManifestName string
}

// Session is an output session for one run. Methods are safe for
// concurrent use.
type Session struct {
	opts Options

	mu       sync.Mutex
	written  map[string]bool
	previous []string
	finished bool
}

// New opens a session rooted at opts.Root and loads the previous
// run's manifest if one exists.
func New(opts Options) (*Session, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("output session: no root directory")
	}
	if opts.ManifestName == "" {
		opts.ManifestName = DefaultManifestName
	}
	if err := os.MkdirAll(opts.Root, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	s := &Session{opts: opts, written: make(map[string]bool)}

	data, err := os.ReadFile(filepath.Join(opts.Root, opts.ManifestName))
	if err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				s.previous = append(s.previous, line)
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	return s, nil
}

// Open creates a file under the session root and records it in the
// run manifest. The handle's Name() reveals the actual path, which may
// differ from the requested one after conflict disambiguation.
func (s *Session) Open(path string) (*os.File, error) {
	rel, err := s.claim(path)
	if err != nil {
		return nil, err
	}
	full := filepath.Join(s.opts.Root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		s.unclaim(rel)
		return nil, fmt.Errorf("creating %s: %w", filepath.Dir(rel), err)
	}
	f, err := os.Create(full)
	if err != nil {
		s.unclaim(rel)
		return nil, fmt.Errorf("creating %s: %w", rel, err)
	}
	return f, nil
}

// CopyFile copies src into the session. With no explicit destination
// the source's base name is used. Returns the actual destination path
// relative to the session root.
func (s *Session) CopyFile(src string, dst ...string) (string, error) {
	dest := filepath.Base(src)
	if len(dst) > 0 && dst[0] != "" {
		dest = dst[0]
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("copying %s: %w", src, err)
	}
	defer in.Close()

	out, err := s.Open(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("copying %s: %w", src, err)
	}
	rel, err := filepath.Rel(s.opts.Root, out.Name())
	if err != nil {
		return out.Name(), nil
	}
	return rel, nil
}

// Finish writes the run manifest and deletes every path the previous
// manifest recorded that this run did not write. Call it exactly once,
// after all output is produced.
func (s *Session) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return fmt.Errorf("output session already finished")
	}
	s.finished = true

	paths := make([]string, 0, len(s.written))
	for p := range s.written {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	manifest := filepath.Join(s.opts.Root, s.opts.ManifestName)
	if err := os.WriteFile(manifest, []byte(strings.Join(paths, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	// Garbage-collect artifacts from prior runs that this run did not
	// regenerate.
	for _, p := range s.previous {
		if s.written[p] || p == s.opts.ManifestName {
			continue
		}
		if err := os.Remove(filepath.Join(s.opts.Root, p)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing stale %s: %w", p, err)
		}
	}
	return nil
}

// claim validates and reserves a destination path, applying the
// filename cap and the conflict policy.
func (s *Session) claim(path string) (string, error) {
	rel := filepath.Clean(filepath.ToSlash(path))
	if rel == "." || rel == "" {
		return "", fmt.Errorf("output session: empty destination path")
	}
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("output session: destination %q escapes the session root", path)
	}
	rel = capFilename(rel)
	if rel == s.opts.ManifestName {
		return "", fmt.Errorf("output session: destination %q collides with the manifest", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return "", fmt.Errorf("output session already finished")
	}
	if !s.written[rel] {
		s.written[rel] = true
		return rel, nil
	}
	if s.opts.OnConflict == ErrorOnConflict {
		return "", fmt.Errorf("output session: %s already written this run", rel)
	}
	for n := 2; ; n++ {
		candidate := numberedName(rel, n)
		if !s.written[candidate] {
			s.written[candidate] = true
			return candidate, nil
		}
	}
}

// unclaim releases a reserved path whose file could not be created, so
// it neither lands in the manifest nor blocks the name for later
// writes.
func (s *Session) unclaim(rel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.written, rel)
}

// numberedName inserts a numeric suffix before the extension:
// widget.h → widget_2.h. The stem is shortened first when the suffix
// would push the filename over the cap, so the result is always a new
// name even for already-capped inputs.
func numberedName(rel string, n int) string {
	dir, name := filepath.Split(rel)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	suffix := fmt.Sprintf("_%d", n)
	if max := maxFilenameLen - len(suffix) - len(ext); max > 0 && len(stem) > max {
		stem = stem[:max]
	}
	return dir + stem + suffix + ext
}

// capFilename truncates the base filename to maxFilenameLen while
// preserving the extension.
func capFilename(rel string) string {
	dir, name := filepath.Split(rel)
	if len(name) <= maxFilenameLen {
		return rel
	}
	ext := filepath.Ext(name)
	if len(ext) >= maxFilenameLen {
		ext = ""
	}
	stem := name[:maxFilenameLen-len(ext)]
	return dir + stem + ext
}

// Package walk performs recursive filesystem enumeration over a vfs.VFS,
// yielding each distinct regular file exactly once. It is an external
// collaborator to the catalog: it consumes the VFS interface and produces a
// path stream, never performing classification itself.
package walk

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/zwimer/smllr/internal/logging"
	"github.com/zwimer/smllr/internal/vfs"
)

// Options configures a Walk invocation.
type Options struct {
	// Roots are the starting directories to traverse.
	Roots []string
	// SkipPaths are exact path prefixes pruned before descent.
	SkipPaths []string
	// SkipPatterns are regular expressions matched against file base names;
	// a match skips the file without affecting directory descent.
	SkipPatterns []*regexp.Regexp
}

// Yield is called once for every distinct regular file the walk discovers.
type Yield func(path string) error

// walker holds the traversal state for one Walk call.
type walker struct {
	ctx     context.Context
	vfs     vfs.VFS
	opts    Options
	yield   Yield
	visited map[vfs.ID]bool
	logger  *logging.Logger
}

// Walk recursively enumerates every regular file reachable from opts.Roots,
// pruning blacklisted directories before descent, skipping files whose base
// name matches a blacklist pattern, and following symlinks while visiting
// each resolved target at most once. Broken links and symlink cycles are
// logged and skipped rather than propagated, per the traversal error policy:
// per-file errors during traversal are not fatal. A root that cannot be
// statted is a startup failure and is returned as an error.
func Walk(ctx context.Context, fs vfs.VFS, opts Options, logger *logging.Logger, yield Yield) error {
	w := &walker{
		ctx:     ctx,
		vfs:     fs,
		opts:    opts,
		yield:   yield,
		visited: make(map[vfs.ID]bool),
		logger:  logger,
	}
	for _, root := range opts.Roots {
		if _, err := fs.Metadata(root); err != nil {
			return fmt.Errorf("unable to read root %s: %w", root, err)
		}
		if err := w.walkPath(root); err != nil {
			return err
		}
	}
	return nil
}

// skippedByPath reports whether p is pruned by the exact path-prefix
// blacklist.
func (w *walker) skippedByPath(p string) bool {
	for _, prefix := range w.opts.SkipPaths {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// skippedByPattern reports whether base matches the regex blacklist. Base
// names are recomposed to normalization form C before matching so that
// blacklist patterns behave consistently across filesystems that decompose
// Unicode on disk, mirroring scanner.recomposeUnicode in mutagen's scan.go.
func (w *walker) skippedByPattern(base string) bool {
	normalized := norm.NFC.String(base)
	for _, pattern := range w.opts.SkipPatterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}
	return false
}

// walkPath processes a single path, following symlinks and recursing into
// directories.
func (w *walker) walkPath(p string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	if w.skippedByPath(p) {
		return nil
	}

	meta, err := w.vfs.SymlinkMetadata(p)
	if err != nil {
		w.logger.Warn(fmt.Errorf("skipping %s: %w", p, err))
		return nil
	}

	switch meta.Kind {
	case vfs.KindDirectory:
		return w.walkDirectory(p)
	case vfs.KindSymlink:
		return w.walkSymlink(p)
	default:
		return w.walkFile(p, meta)
	}
}

// walkDirectory lists and recurses into a directory's children.
func (w *walker) walkDirectory(p string) error {
	entries, err := w.vfs.ListDir(p)
	if err != nil {
		w.logger.Warn(fmt.Errorf("skipping directory %s: %w", p, err))
		return nil
	}
	for _, entry := range entries {
		if err := w.walkPath(path.Join(p, entry.Name)); err != nil {
			return err
		}
	}
	return nil
}

// walkSymlink resolves a symlink, following it to its target. Broken links
// and cycles are logged at warn level and skipped.
func (w *walker) walkSymlink(p string) error {
	meta, err := w.vfs.Metadata(p)
	if err != nil {
		w.logger.Warn(fmt.Errorf("skipping broken symlink %s: %w", p, err))
		return nil
	}
	if w.visited[meta.ID] {
		return nil
	}

	target, err := w.vfs.ReadLink(p)
	if err != nil {
		w.logger.Warn(fmt.Errorf("skipping symlink %s: %w", p, err))
		return nil
	}
	if !path.IsAbs(target) {
		target = path.Join(path.Dir(p), target)
	}

	if meta.Kind == vfs.KindDirectory {
		w.visited[meta.ID] = true
		return w.walkDirectory(target)
	}
	return w.walkFile(p, meta)
}

// walkFile yields a regular file, deduplicating by ID so a target reached
// through multiple names (hardlinks or symlinks) surfaces once.
func (w *walker) walkFile(p string, meta *vfs.Metadata) error {
	if w.visited[meta.ID] {
		return nil
	}
	base := path.Base(p)
	if w.skippedByPattern(base) {
		return nil
	}
	w.visited[meta.ID] = true
	return w.yield(p)
}

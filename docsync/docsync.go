// Package docsync discovers markdown documentation, resolves the
// content files its directives reference, and rewrites the fenced code
// blocks so they match the tagged regions in the content.
package docsync

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/snipsync/snipsync/config"
	"github.com/snipsync/snipsync/markdown"
	"github.com/snipsync/snipsync/snippet"
)

// Documents is one sync run: the discovered doc files, the content
// root, and the cache of parsed content files.
type Documents struct {
	cfg  *config.Config
	log  *zap.Logger
	root string
	docs []*docFile

	mu      sync.Mutex
	content map[string]*snippet.File
}

type docFile struct {
	path     string
	segments []markdown.Segment
}

// New discovers the markdown files under docPath and resolves the
// content root. docPath may be a single markdown file or a directory
// tree containing at least one.
func New(docPath string, cfg *config.Config, log *zap.Logger) (*Documents, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	info, err := os.Stat(docPath)
	if err != nil {
		return nil, &PathNotFoundError{Path: docPath}
	}

	d := &Documents{
		cfg:     cfg,
		log:     log,
		content: make(map[string]*snippet.File),
	}

	docDir := docPath
	if !info.IsDir() {
		if !isMarkdownFile(docPath) {
			return nil, &NotAMarkdownFileError{Path: docPath}
		}
		d.docs = append(d.docs, &docFile{path: docPath})
		docDir = filepath.Dir(docPath)
	} else {
		if err := d.findMarkdownFiles(docPath); err != nil {
			return nil, err
		}
		if len(d.docs) == 0 {
			return nil, &NoMarkdownFilesError{Path: docPath}
		}
	}

	d.root = cfg.ContentRoot
	if d.root == "" {
		d.root, err = gitToplevel(docDir)
		if err != nil {
			return nil, err
		}
	}

	log.Debug("discovered docs",
		zap.Int("files", len(d.docs)),
		zap.String("content_root", d.root))

	return d, nil
}

// Root returns the resolved content root.
func (d *Documents) Root() string {
	return d.root
}

func (d *Documents) findMarkdownFiles(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != dir && d.cfg.Excluded(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdownFile(path) {
			d.docs = append(d.docs, &docFile{path: path})
		}
		return nil
	})
}

func isMarkdownFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// gitToplevel resolves the repository root the way git sees it, so that
// directive paths stay stable no matter where the docs live.
func gitToplevel(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return "", ErrGitToplevel
	}

	top := strings.TrimSpace(string(out))
	if top == "" {
		return "", ErrGitToplevel
	}

	return top, nil
}

// Parse reads and parses every doc file, then every content file the
// directives reference. Doc files are independent and parsed
// concurrently, content files likewise.
func (d *Documents) Parse(ctx context.Context) error {
	d.log.Debug("parsing markdown files", zap.Int("files", len(d.docs)))

	g, _ := errgroup.WithContext(ctx)
	for _, doc := range d.docs {
		doc := doc
		g.Go(func() error {
			data, err := os.ReadFile(doc.path)
			if err != nil {
				return err
			}

			segments, err := markdown.Parse(string(data))
			if err != nil {
				return wrapPath(doc.path, err)
			}
			doc.segments = segments

			d.mu.Lock()
			for _, segment := range segments {
				if segment.Directive != nil {
					d.content[segment.Directive.Path] = nil
					d.log.Debug("directive",
						zap.String("doc", doc.path),
						zap.String("content", segment.Directive.Path),
						zap.Strings("tags", segment.Directive.Tags))
				}
			}
			d.mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	d.log.Debug("parsing content files", zap.Int("files", len(d.content)))

	// snapshot the keys, the workers below write into the map
	paths := make([]string, 0, len(d.content))
	for path := range d.content {
		paths = append(paths, path)
	}

	g, _ = errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			absolute := filepath.Join(d.root, path)

			data, err := os.ReadFile(absolute)
			if err != nil {
				return &ContentFileNotFoundError{Path: path}
			}

			parsed, err := snippet.Parse(string(data))
			if err != nil {
				return wrapPath(path, err)
			}

			d.mu.Lock()
			d.content[path] = parsed
			d.mu.Unlock()

			return nil
		})
	}
	return g.Wait()
}

// Sync renders every doc file and rewrites the stale ones in place.
// Up-to-date files are left untouched, so a watcher over the doc
// directories never sees sync's own writes for an unchanged tree.
func (d *Documents) Sync(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	for _, doc := range d.docs {
		doc := doc
		g.Go(func() error {
			rendered, err := d.render(doc)
			if err != nil {
				return wrapPath(doc.path, err)
			}

			current, err := os.ReadFile(doc.path)
			if err != nil {
				return err
			}
			if string(current) == rendered {
				d.log.Debug("up to date", zap.String("doc", doc.path))
				return nil
			}

			f, err := os.OpenFile(doc.path, os.O_WRONLY|os.O_TRUNC, 0)
			if err != nil {
				return err
			}
			if _, err := f.WriteString(rendered); err != nil {
				f.Close()
				return err
			}
			if err := f.Sync(); err != nil {
				f.Close()
				return err
			}

			d.log.Info("synced", zap.String("doc", doc.path))

			return f.Close()
		})
	}
	return g.Wait()
}

// Check renders every doc file and reports the ones whose content on
// disk differs. Nothing is written.
func (d *Documents) Check(ctx context.Context) ([]string, error) {
	var (
		staleMu sync.Mutex
		stale   []string
	)

	g, _ := errgroup.WithContext(ctx)
	for _, doc := range d.docs {
		doc := doc
		g.Go(func() error {
			rendered, err := d.render(doc)
			if err != nil {
				return wrapPath(doc.path, err)
			}

			current, err := os.ReadFile(doc.path)
			if err != nil {
				return err
			}

			if string(current) != rendered {
				staleMu.Lock()
				stale = append(stale, doc.path)
				staleMu.Unlock()
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(stale)
	return stale, nil
}

// WatchDirs returns every directory a watcher needs to monitor: the
// directories of the doc files and of the referenced content files.
func (d *Documents) WatchDirs() []string {
	seen := make(map[string]struct{})

	for _, doc := range d.docs {
		seen[filepath.Dir(doc.path)] = struct{}{}
	}
	for path := range d.content {
		seen[filepath.Dir(filepath.Join(d.root, path))] = struct{}{}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	return dirs
}

// Package epub assembles metadata, articles and assets into an OPF 2.0
// e-book archive.
package epub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/eykd/epubgen/internal/fsutil"
	"github.com/eykd/epubgen/internal/markup"
	"github.com/eykd/epubgen/internal/metadata"
)

var (
	// ErrAsset is returned when an image or file source cannot be read.
	ErrAsset = errors.New("unreadable asset")
	// ErrDuplicateFilename is returned when an explicit article filename
	// is already taken.
	ErrDuplicateFilename = errors.New("duplicate article filename")
)

// Fixed virtual paths inside the archive.
const (
	PathMimetype  = "mimetype"
	PathContainer = "META-INF/container.xml"
	PathPackage   = "OEBPS/content.opf"
	PathNavMap    = "OEBPS/toc.ncx"
	PathStyle     = "OEBPS/stylesheet.css"
	PathPageTmpl  = "OEBPS/pagetemplate.xpgt"
	PathTitlePage = "OEBPS/text/title_page.html"
	PathContents  = "OEBPS/text/contents.html"
	textDir       = "OEBPS/text/"
	imageDir      = "OEBPS/images/"
	fileDir       = "OEBPS/"
)

// Article is one content document of the package.
type Article struct {
	Title string
	// Content is an XHTML body fragment inserted verbatim.
	Content  string
	Filename string
	Author   string
}

// Asset is an image or auxiliary file copied into the archive.
type Asset struct {
	Source    string
	Dest      string
	Filename  string
	MediaType string
}

// Option configures a Builder.
type Option func(*Builder)

// WithFs sets the filesystem assets are read from and archives written to.
func WithFs(fs afero.Fs) Option {
	return func(b *Builder) { b.fs = fs }
}

// WithRenderer replaces the embedded template renderer.
func WithRenderer(r Renderer) Option {
	return func(b *Builder) { b.renderer = r }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithMetadata replaces the Builder's initial metadata store.
func WithMetadata(m *metadata.Store) Option {
	return func(b *Builder) { b.metadata = m }
}

// Builder collects the documents and assets of one package. It is not safe
// for concurrent use.
type Builder struct {
	metadata *metadata.Store
	articles []Article
	images   []Asset
	files    []Asset

	fs       afero.Fs
	renderer Renderer
	logger   *log.Logger
}

// New returns an empty Builder backed by the OS filesystem and the
// embedded templates.
func New(opts ...Option) (*Builder, error) {
	b := &Builder{
		fs:     afero.NewOsFs(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.metadata == nil {
		b.metadata = metadata.New()
	}
	if b.renderer == nil {
		r, err := NewTemplateRenderer()
		if err != nil {
			return nil, err
		}
		b.renderer = r
	}
	return b, nil
}

// Metadata returns the Builder's metadata store.
func (b *Builder) Metadata() *metadata.Store { return b.metadata }

// SetMetadata merges m into the current store, or adopts m when there is
// none.
func (b *Builder) SetMetadata(m *metadata.Store) {
	if b.metadata == nil {
		b.metadata = m
		return
	}
	b.metadata.Update(m)
}

// Articles returns a copy of the articles in insertion order.
func (b *Builder) Articles() []Article { return append([]Article(nil), b.articles...) }

// Images returns a copy of the images in insertion order.
func (b *Builder) Images() []Asset { return append([]Asset(nil), b.images...) }

// Files returns a copy of the auxiliary files in insertion order.
func (b *Builder) Files() []Asset { return append([]Asset(nil), b.files...) }

// AddArticle appends an article. An empty filename defaults to the
// slugified title plus ".html", numbered "-2", "-3", ... when taken; an
// explicit filename already in use fails with ErrDuplicateFilename. A
// non-empty author is registered as a contributor with the author role.
func (b *Builder) AddArticle(title, content, filename, author string) error {
	if filename == "" {
		slug := Slugify(title)
		if slug == "" {
			slug = "article-" + strconv.Itoa(len(b.articles)+1)
		}
		filename = b.freeFilename(slug)
	} else if b.hasArticle(filename) {
		return fmt.Errorf("article %q: %w: %s", title, ErrDuplicateFilename, filename)
	}
	if author != "" {
		if err := b.metadata.AddContributor(author, "", metadata.RoleAuthor); err != nil {
			return fmt.Errorf("article %q: %w", title, err)
		}
	}
	b.articles = append(b.articles, Article{Title: title, Content: content, Filename: filename, Author: author})
	return nil
}

func (b *Builder) hasArticle(filename string) bool {
	for _, a := range b.articles {
		if a.Filename == filename {
			return true
		}
	}
	return false
}

func (b *Builder) freeFilename(slug string) string {
	filename := slug + ".html"
	for n := 2; b.hasArticle(filename); n++ {
		filename = slug + "-" + strconv.Itoa(n) + ".html"
	}
	return filename
}

// AddImage appends an image stored under OEBPS/images/. name defaults to
// the base name of path and mediaType to a guess from name.
func (b *Builder) AddImage(path, name, mediaType string) {
	b.images = append(b.images, newAsset(path, name, mediaType, imageDir))
}

// AddFile appends an auxiliary file stored under OEBPS/.
func (b *Builder) AddFile(path, name, mediaType string) {
	b.files = append(b.files, newAsset(path, name, mediaType, fileDir))
}

func newAsset(path, name, mediaType, dir string) Asset {
	if name == "" {
		name = filepath.Base(path)
	}
	if mediaType == "" {
		mediaType = GuessMediaType(name)
	}
	return Asset{Source: path, Dest: dir + name, Filename: name, MediaType: mediaType}
}

// Generate writes the package to path. The archive is built in a temp file
// and moved into place only when every entry was written, so a failure
// leaves nothing at path.
func (b *Builder) Generate(ctx context.Context, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	err := fsutil.WriteAtomic(b.fs, path, 0o644, func(w io.Writer) error {
		return b.Write(ctx, w)
	})
	if err != nil {
		return fmt.Errorf("generating %s: %w", path, err)
	}
	b.logger.Info("wrote package", "path", path, "articles", len(b.articles), "images", len(b.images), "files", len(b.files))
	return nil
}

// Write streams the package as a zip archive to w.
func (b *Builder) Write(ctx context.Context, w io.Writer) (err error) {
	archive := NewZipArchive(w)
	defer func() {
		if cerr := archive.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing archive: %w", cerr)
		}
	}()
	return b.writeEntries(ctx, archive)
}

type entry struct {
	path    string
	mode    Compression
	content func() ([]byte, error)
}

// entries lists the archive in its required order: the stored mimetype
// first, then control files, generated documents, images, articles and
// auxiliary files.
func (b *Builder) entries() []entry {
	es := []entry{
		{path: PathMimetype, mode: Stored, content: static("mimetype")},
		{path: PathContainer, content: static("container.xml")},
		{path: PathPackage, content: b.render(TemplatePackage, b.packageContext())},
		{path: PathNavMap, content: b.render(TemplateNavMap, b.navMapContext())},
		{path: PathStyle, content: static("stylesheet.css")},
		{path: PathPageTmpl, content: static("pagetemplate.xpgt")},
		{path: PathTitlePage, content: b.render(TemplateTitlePage, b.titlePageContext())},
		{path: PathContents, content: b.render(TemplateContents, map[string]any{"articles": b.articles})},
	}
	for _, img := range b.images {
		es = append(es, entry{path: img.Dest, content: b.readAsset(img)})
	}
	for _, a := range b.articles {
		es = append(es, entry{path: textDir + a.Filename, content: b.render(TemplateArticle, map[string]any{"article": a})})
	}
	for _, f := range b.files {
		es = append(es, entry{path: f.Dest, content: b.readAsset(f)})
	}
	return es
}

func (b *Builder) writeEntries(ctx context.Context, archive Archive) error {
	for _, e := range b.entries() {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := e.content()
		if err != nil {
			return err
		}
		if err := archive.Add(e.path, data, e.mode); err != nil {
			return err
		}
		b.logger.Debug("added entry", "path", e.path, "bytes", len(data))
	}
	return nil
}

func (b *Builder) packageContext() map[string]any {
	return map[string]any{
		"metadata": b.metadata,
		"articles": b.articles,
		"images":   b.images,
		"files":    b.files,
	}
}

func (b *Builder) navMapContext() map[string]any {
	return map[string]any{
		"pub_id":   b.metadata.UniqueID().Value,
		"title":    b.metadata.Title(),
		"articles": b.articles,
	}
}

func (b *Builder) titlePageContext() map[string]any {
	return map[string]any{
		"title":       b.metadata.Title(),
		"description": b.metadata.Description(),
		"publisher":   b.metadata.Publisher(),
		"metadata":    b.metadata,
	}
}

func (b *Builder) render(name string, data map[string]any) func() ([]byte, error) {
	return func() ([]byte, error) {
		out, err := b.renderer.Render(name, data)
		if err != nil {
			return nil, err
		}
		return []byte(markup.ASCII(out)), nil
	}
}

func (b *Builder) readAsset(a Asset) func() ([]byte, error) {
	return func() ([]byte, error) {
		data, err := afero.ReadFile(b.fs, a.Source)
		if err != nil {
			return nil, fmt.Errorf("%w %s (%s): %w", ErrAsset, a.Source, a.Dest, err)
		}
		return data, nil
	}
}

func static(name string) func() ([]byte, error) {
	return func() ([]byte, error) {
		return staticFile(name)
	}
}

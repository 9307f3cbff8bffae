// Package config loads the book description file (book.yml) that drives a
// build.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/eykd/epubgen/internal/metadata"
)

// FileName is the conventional config file name.
const FileName = "book.yml"

// Defaults applied when the config file and environment leave a key unset.
const (
	DefaultBinder = "_binder.md"
	DefaultOutput = "book.epub"
)

// EnvPrefix prefixes environment overrides, e.g. EPUBGEN_TITLE.
const EnvPrefix = "EPUBGEN"

// ErrNotFound is returned when the config file does not exist.
var ErrNotFound = errors.New("config file not found")

// Agent is a creator or contributor entry.
type Agent struct {
	Name   string `mapstructure:"name"`
	FileAs string `mapstructure:"file_as"`
	Role   string `mapstructure:"role"`
}

// Identifier is a package identifier entry.
type Identifier struct {
	Value  string `mapstructure:"value"`
	ID     string `mapstructure:"id"`
	Scheme string `mapstructure:"scheme"`
}

// Date is a date entry with an optional event.
type Date struct {
	Value string `mapstructure:"value"`
	Event string `mapstructure:"event"`
}

// Meta is a named meta entry.
type Meta struct {
	Name    string `mapstructure:"name"`
	Content string `mapstructure:"content"`
}

// Asset is an image or auxiliary file to copy into the package.
type Asset struct {
	Path      string `mapstructure:"path"`
	Name      string `mapstructure:"name"`
	MediaType string `mapstructure:"mime_type"`
}

// Config is the decoded book description.
type Config struct {
	Title       string `mapstructure:"title"`
	Language    string `mapstructure:"language"`
	Description string `mapstructure:"description"`
	Publisher   string `mapstructure:"publisher"`
	Rights      string `mapstructure:"rights"`
	Coverage    string `mapstructure:"coverage"`
	Format      string `mapstructure:"format"`
	Source      string `mapstructure:"source"`

	// Identifier replaces the generated unique identifier when its value
	// is set.
	Identifier   Identifier   `mapstructure:"identifier"`
	Identifiers  []Identifier `mapstructure:"identifiers"`
	Creators     []Agent      `mapstructure:"creators"`
	Contributors []Agent      `mapstructure:"contributors"`
	Subjects     []string     `mapstructure:"subjects"`
	Relations    []string     `mapstructure:"relations"`
	Types        []string     `mapstructure:"types"`
	Dates        []Date       `mapstructure:"dates"`
	Meta         []Meta       `mapstructure:"meta"`

	Images []Asset `mapstructure:"images"`
	Files  []Asset `mapstructure:"files"`

	Binder string `mapstructure:"binder"`
	Output string `mapstructure:"output"`

	// Dir is the directory of the loaded file. Relative paths resolve
	// against it.
	Dir string `mapstructure:"-"`
}

// Load reads the YAML config at path from fs. Environment variables with
// the EPUBGEN_ prefix override top-level scalar keys.
func Load(fs afero.Fs, path string) (*Config, error) {
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("language", metadata.DefaultLanguage)
	v.SetDefault("binder", DefaultBinder)
	v.SetDefault("output", DefaultOutput)
	for _, key := range []string{"title", "description", "publisher", "rights", "coverage", "format", "source"} {
		v.SetDefault(key, "")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	return &cfg, nil
}

// Resolve returns p joined to the config directory unless p is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Apply copies the metadata of c into s. Entries are added in file order;
// an invalid role or date event aborts with the store partially filled.
func (c *Config) Apply(s *metadata.Store) error {
	scalars := []struct {
		field metadata.Field
		value string
	}{
		{metadata.FieldTitle, c.Title},
		{metadata.FieldLanguage, c.Language},
		{metadata.FieldDescription, c.Description},
		{metadata.FieldPublisher, c.Publisher},
		{metadata.FieldRights, c.Rights},
		{metadata.FieldCoverage, c.Coverage},
		{metadata.FieldFormat, c.Format},
		{metadata.FieldSource, c.Source},
	}
	for _, sc := range scalars {
		if sc.value == "" {
			continue
		}
		if err := s.Set(string(sc.field), sc.value); err != nil {
			return err
		}
	}

	if c.Identifier.Value != "" {
		id, scheme := c.Identifier.ID, c.Identifier.Scheme
		if id == "" {
			id = metadata.DefaultUniqueIDName
		}
		s.SetUniqueID(c.Identifier.Value, id, scheme)
	}
	for _, id := range c.Identifiers {
		s.AddIdentifier(id.Value, id.ID, id.Scheme)
	}
	for _, a := range c.Creators {
		if err := s.AddCreator(a.Name, a.FileAs, metadata.Role(a.Role)); err != nil {
			return err
		}
	}
	for _, a := range c.Contributors {
		if err := s.AddContributor(a.Name, a.FileAs, metadata.Role(a.Role)); err != nil {
			return err
		}
	}
	for _, v := range c.Subjects {
		s.AddSubject(v)
	}
	for _, v := range c.Relations {
		s.AddRelation(v)
	}
	for _, v := range c.Types {
		s.AddType(v)
	}
	for _, d := range c.Dates {
		if err := s.AddDate(d.Value, metadata.DateEvent(d.Event)); err != nil {
			return fmt.Errorf("date %q: %w", d.Value, err)
		}
	}
	for _, m := range c.Meta {
		s.AddMeta(m.Name, m.Content)
	}
	return nil
}

// Scaffold returns the content of a starter config file. The creators list
// is omitted when author is empty.
func Scaffold(title, author string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "title: %q\n", title)
	fmt.Fprintf(&b, "language: %s\n", metadata.DefaultLanguage)
	if author != "" {
		b.WriteString("creators:\n")
		fmt.Fprintf(&b, "  - name: %q\n", author)
		fmt.Fprintf(&b, "    role: %s\n", metadata.RoleAuthor)
	}
	fmt.Fprintf(&b, "binder: %s\n", DefaultBinder)
	fmt.Fprintf(&b, "output: %s\n", DefaultOutput)
	return b.String()
}

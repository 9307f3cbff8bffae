package metadata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eykd/epubgen/internal/name"
)

const (
	// DefaultUniqueIDName is the id attribute of the generated unique identifier.
	DefaultUniqueIDName = "BookId"
	// DefaultUniqueIDScheme is the scheme of the generated unique identifier.
	DefaultUniqueIDScheme = "uuid"
	// DefaultLanguage is the language of a new Store.
	DefaultLanguage = "en"
)

// IDGenerator returns a fresh unique identifier value.
type IDGenerator func() string

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID source used for the default unique
// identifier.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// Store is the metadata of one package. It is not safe for concurrent use.
//
// Singular fields hold at most one value. Creators, contributors and meta
// entries are keyed by name: adding an existing name overwrites the entry
// in place. All other multi-valued fields keep insertion order.
//
// The zero value is usable but has no language and no unique identifier;
// use New for those defaults.
type Store struct {
	newID IDGenerator

	singular     map[Field]string
	identifiers  []Identifier
	uniqueID     Identifier
	creators     keyed[Agent]
	contributors keyed[Agent]
	subjects     []string
	relations    []string
	types        []string
	dates        []Date
	metas        keyed[Meta]
}

// New returns a Store with an empty title, language "en" and a freshly
// generated unique identifier.
func New(opts ...Option) *Store {
	s := &Store{
		newID:    uuid.NewString,
		singular: map[Field]string{FieldTitle: "", FieldLanguage: DefaultLanguage},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetUniqueID(s.newID(), DefaultUniqueIDName, DefaultUniqueIDScheme)
	return s
}

// Set assigns a singular field by name.
func (s *Store) Set(field, value string) error {
	spec, ok := lookupField(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if spec.kind != KindScalar {
		return fmt.Errorf("%w: set %s with its add method", ErrMultiValued, field)
	}
	s.setSingular(spec.field, value)
	return nil
}

func (s *Store) setSingular(field Field, value string) {
	if s.singular == nil {
		s.singular = make(map[Field]string)
	}
	s.singular[field] = value
}

// Get returns a singular field by name, or "" when it is unset or not a
// singular field.
func (s *Store) Get(field string) string {
	return s.singular[Field(field)]
}

// Title returns the dc:title value.
func (s *Store) Title() string { return s.singular[FieldTitle] }

// Language returns the dc:language value.
func (s *Store) Language() string { return s.singular[FieldLanguage] }

// Description returns the dc:description value.
func (s *Store) Description() string { return s.singular[FieldDescription] }

// Publisher returns the dc:publisher value.
func (s *Store) Publisher() string { return s.singular[FieldPublisher] }

// SetTitle sets the dc:title value.
func (s *Store) SetTitle(v string) { s.setSingular(FieldTitle, v) }

// SetLanguage sets the dc:language value.
func (s *Store) SetLanguage(v string) { s.setSingular(FieldLanguage, v) }

// SetDescription sets the dc:description value.
func (s *Store) SetDescription(v string) { s.setSingular(FieldDescription, v) }

// SetPublisher sets the dc:publisher value.
func (s *Store) SetPublisher(v string) { s.setSingular(FieldPublisher, v) }

// AddDate appends a date. event may be empty.
func (s *Store) AddDate(value string, event DateEvent) error {
	if event != "" && !event.Valid() {
		return fmt.Errorf("%w: %q must be empty or one of creation, publication, modification", ErrInvalidEvent, event)
	}
	s.dates = append(s.dates, Date{Value: value, Event: event})
	return nil
}

// EventDate returns the value of the first date with the given event.
func (s *Store) EventDate(event DateEvent) (string, bool) {
	for _, d := range s.dates {
		if d.Event == event {
			return d.Value, true
		}
	}
	return "", false
}

// CreationDate returns the first date with the creation event.
func (s *Store) CreationDate() (string, bool) { return s.EventDate(EventCreation) }

// PublicationDate returns the first date with the publication event.
func (s *Store) PublicationDate() (string, bool) { return s.EventDate(EventPublication) }

// ModificationDate returns the first date with the modification event.
func (s *Store) ModificationDate() (string, bool) { return s.EventDate(EventModification) }

// SetCreationDate appends a date with the creation event.
func (s *Store) SetCreationDate(v string) {
	s.dates = append(s.dates, Date{Value: v, Event: EventCreation})
}

// SetPublicationDate appends a date with the publication event.
func (s *Store) SetPublicationDate(v string) {
	s.dates = append(s.dates, Date{Value: v, Event: EventPublication})
}

// SetModificationDate appends a date with the modification event.
func (s *Store) SetModificationDate(v string) {
	s.dates = append(s.dates, Date{Value: v, Event: EventModification})
}

// AddCreator adds or replaces the creator called displayName. An empty
// fileAs is derived with name.FormatName; an empty role means RoleAuthor.
func (s *Store) AddCreator(displayName, fileAs string, role Role) error {
	a, err := newAgent(displayName, fileAs, role)
	if err != nil {
		return fmt.Errorf("creator %q: %w", displayName, err)
	}
	s.creators.put(a.Name, a)
	return nil
}

// AddContributor adds or replaces the contributor called displayName, with
// the same defaults as AddCreator.
func (s *Store) AddContributor(displayName, fileAs string, role Role) error {
	a, err := newAgent(displayName, fileAs, role)
	if err != nil {
		return fmt.Errorf("contributor %q: %w", displayName, err)
	}
	s.contributors.put(a.Name, a)
	return nil
}

func newAgent(displayName, fileAs string, role Role) (Agent, error) {
	if role == "" {
		role = RoleAuthor
	}
	if !role.Valid() {
		return Agent{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if fileAs == "" {
		sortName, err := name.FormatName(displayName)
		switch {
		case errors.Is(err, name.ErrSingleToken):
			sortName = strings.TrimSpace(displayName)
		case err != nil:
			return Agent{}, err
		}
		fileAs = sortName
	}
	return Agent{Name: displayName, FileAs: fileAs, Role: role}, nil
}

// AddIdentifier appends an identifier. id and scheme may be empty.
func (s *Store) AddIdentifier(value, id, scheme string) {
	s.identifiers = append(s.identifiers, Identifier{ID: id, Scheme: scheme, Value: value})
}

// AddSubject appends a dc:subject.
func (s *Store) AddSubject(v string) { s.subjects = append(s.subjects, v) }

// AddRelation appends a dc:relation.
func (s *Store) AddRelation(v string) { s.relations = append(s.relations, v) }

// AddType appends a dc:type.
func (s *Store) AddType(v string) { s.types = append(s.types, v) }

// AddMeta sets the generic meta entry called metaName.
func (s *Store) AddMeta(metaName, content string) {
	s.metas.put(metaName, Meta{Name: metaName, Content: content})
}

// SetUniqueID makes the identifier with the given id the package's unique
// identifier, updating an existing identifier with that id or appending one.
func (s *Store) SetUniqueID(value, id, scheme string) {
	s.uniqueID = Identifier{ID: id, Scheme: scheme, Value: value}
	s.putIdentifier(s.uniqueID)
}

// putIdentifier replaces the identifier with the same id, or appends it.
// Identifiers without an id are always appended.
func (s *Store) putIdentifier(id Identifier) {
	if id.ID != "" {
		for i := range s.identifiers {
			if s.identifiers[i].ID == id.ID {
				s.identifiers[i] = id
				if s.uniqueID.ID == id.ID {
					s.uniqueID = id
				}
				return
			}
		}
	}
	s.identifiers = append(s.identifiers, id)
}

// UniqueID returns the unique identifier entry.
func (s *Store) UniqueID() Identifier { return s.uniqueID }

// Identifiers returns all identifiers, the unique one included.
func (s *Store) Identifiers() []Identifier { return append([]Identifier(nil), s.identifiers...) }

// Creators returns the creators in first-insertion order.
func (s *Store) Creators() []Agent { return s.creators.values() }

// Contributors returns the contributors in first-insertion order.
func (s *Store) Contributors() []Agent { return s.contributors.values() }

// Subjects returns the subjects.
func (s *Store) Subjects() []string { return append([]string(nil), s.subjects...) }

// Relations returns the relations.
func (s *Store) Relations() []string { return append([]string(nil), s.relations...) }

// Types returns the types.
func (s *Store) Types() []string { return append([]string(nil), s.types...) }

// Dates returns the dates.
func (s *Store) Dates() []Date { return append([]Date(nil), s.dates...) }

// Metas returns the meta entries in first-insertion order.
func (s *Store) Metas() []Meta { return s.metas.values() }

// Update merges other into s. Non-empty singular fields of other overwrite
// those of s, lists are concatenated, keyed entries are overlaid by key and
// other's unique identifier replaces the one of s. Identifiers with an id
// already present in s replace that entry, so ids stay unique.
func (s *Store) Update(other *Store) {
	for field, v := range other.singular {
		if v != "" {
			s.setSingular(field, v)
		}
	}

	skipped := false
	for _, id := range other.identifiers {
		if !skipped && id == other.uniqueID {
			skipped = true
			continue
		}
		s.putIdentifier(id)
	}
	if other.uniqueID != (Identifier{}) {
		s.SetUniqueID(other.uniqueID.Value, other.uniqueID.ID, other.uniqueID.Scheme)
	}

	s.subjects = append(s.subjects, other.subjects...)
	s.relations = append(s.relations, other.relations...)
	s.types = append(s.types, other.types...)
	s.dates = append(s.dates, other.dates...)

	for _, a := range other.creators.values() {
		s.creators.put(a.Name, a)
	}
	for _, a := range other.contributors.values() {
		s.contributors.put(a.Name, a)
	}
	for _, m := range other.metas.values() {
		s.metas.put(m.Name, m)
	}
}

// keyed is an insertion-ordered map. Putting an existing key replaces the
// value without moving it.
type keyed[T any] struct {
	keys  []string
	items map[string]T
}

func (k *keyed[T]) put(key string, v T) {
	if k.items == nil {
		k.items = make(map[string]T)
	}
	if _, ok := k.items[key]; !ok {
		k.keys = append(k.keys, key)
	}
	k.items[key] = v
}

func (k *keyed[T]) values() []T {
	out := make([]T, 0, len(k.keys))
	for _, key := range k.keys {
		out = append(out, k.items[key])
	}
	return out
}

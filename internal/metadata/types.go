// Package metadata holds the Dublin Core metadata of an e-book package and
// renders it as the <metadata> body of an OPF 2.0 package document.
package metadata

import "errors"

var (
	// ErrInvalidRole is returned when a creator or contributor role is not a
	// MARC relator code from the OPF 2.0 vocabulary.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidEvent is returned when a date event is not creation,
	// publication or modification.
	ErrInvalidEvent = errors.New("invalid date event")
	// ErrMultiValued is returned when Set is called with a field that holds
	// many values and must be populated through its Add method.
	ErrMultiValued = errors.New("field holds many values")
	// ErrUnknownField is returned for field names outside the schema.
	ErrUnknownField = errors.New("unknown field")
)

// Field names a metadata element. Its value is the element name without
// the dc: prefix.
type Field string

const (
	FieldTitle       Field = "title"
	FieldLanguage    Field = "language"
	FieldIdentifier  Field = "identifier"
	FieldCreator     Field = "creator"
	FieldContributor Field = "contributor"
	FieldSubject     Field = "subject"
	FieldDescription Field = "description"
	FieldPublisher   Field = "publisher"
	FieldRelation    Field = "relation"
	FieldDate        Field = "date"
	FieldType        Field = "type"
	FieldRights      Field = "rights"
	FieldCoverage    Field = "coverage"
	FieldFormat      Field = "format"
	FieldSource      Field = "source"
	FieldMeta        Field = "meta"
)

// Kind is the shape of the values a field holds.
type Kind int

const (
	// KindScalar holds zero or one string.
	KindScalar Kind = iota
	// KindListOfScalar holds an ordered list of strings.
	KindListOfScalar
	// KindListOfStruct holds an ordered list of entries with attributes.
	KindListOfStruct
	// KindKeyedStruct holds entries keyed by display name.
	KindKeyedStruct
	// KindMetaList holds generic <meta name content> entries.
	KindMetaList
)

type fieldSpec struct {
	field Field
	kind  Kind
	// required scalars are emitted even when empty.
	required bool
}

// schema is the emission order of Render.
var schema = []fieldSpec{
	{field: FieldTitle, kind: KindScalar, required: true},
	{field: FieldLanguage, kind: KindScalar, required: true},
	{field: FieldIdentifier, kind: KindListOfStruct},
	{field: FieldCreator, kind: KindKeyedStruct},
	{field: FieldContributor, kind: KindKeyedStruct},
	{field: FieldSubject, kind: KindListOfScalar},
	{field: FieldDescription, kind: KindScalar},
	{field: FieldPublisher, kind: KindScalar},
	{field: FieldRelation, kind: KindListOfScalar},
	{field: FieldDate, kind: KindListOfStruct},
	{field: FieldType, kind: KindListOfScalar},
	{field: FieldRights, kind: KindScalar},
	{field: FieldCoverage, kind: KindScalar},
	{field: FieldFormat, kind: KindScalar},
	{field: FieldSource, kind: KindScalar},
	{field: FieldMeta, kind: KindMetaList},
}

func lookupField(field string) (fieldSpec, bool) {
	for _, spec := range schema {
		if string(spec.field) == field {
			return spec, true
		}
	}
	return fieldSpec{}, false
}

// Role is a MARC relator code describing what a creator or contributor did.
type Role string

// RoleAuthor is the default role of creators and contributors.
const RoleAuthor Role = "aut"

// roles is the OPF 2.0 relator vocabulary (section 2.2.6).
var roles = []Role{
	"adp", "ann", "arr", "art", "asn", "aut", "aqt", "aft", "aui", "ant",
	"bkp", "clb", "cmm", "dsr", "edt", "ill", "lyr", "mdc", "mus", "nrt",
	"oth", "pht", "prt", "red", "rev", "spn", "ths", "trc", "trl",
}

// Roles returns the accepted role codes.
func Roles() []Role {
	return append([]Role(nil), roles...)
}

// Valid reports whether r is in the relator vocabulary.
func (r Role) Valid() bool {
	for _, v := range roles {
		if v == r {
			return true
		}
	}
	return false
}

// DateEvent qualifies a date entry. The zero value means no event.
type DateEvent string

const (
	EventCreation     DateEvent = "creation"
	EventPublication  DateEvent = "publication"
	EventModification DateEvent = "modification"
)

// Valid reports whether e is one of the three OPF date events.
func (e DateEvent) Valid() bool {
	switch e {
	case EventCreation, EventPublication, EventModification:
		return true
	}
	return false
}

// Identifier is a dc:identifier entry.
type Identifier struct {
	ID     string
	Scheme string
	Value  string
}

// Date is a dc:date entry. Value is YYYY, YYYY-MM or YYYY-MM-DD.
type Date struct {
	Value string
	Event DateEvent
}

// Agent is a creator or contributor. Name is the display name and the key
// the entry is stored under.
type Agent struct {
	Name   string
	FileAs string
	Role   Role
}

// Meta is a generic <meta> entry.
type Meta struct {
	Name    string
	Content string
}

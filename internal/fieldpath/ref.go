package fieldpath

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// Policy says how an editable node's content is captured.
type Policy int

const (
	// Plain fields capture the node's text content.
	Plain Policy = iota
	// Rich fields capture sanitized inner markup, so inline styling survives.
	Rich
)

func (p Policy) String() string {
	if p == Rich {
		return "rich"
	}
	return "plain"
}

// Kind classifies what a Ref addresses.
type Kind int

const (
	KindProfile Kind = iota + 1
	KindSummary
	KindTitle
	KindItem
	KindBullet
)

const (
	segProfile  = "profile"
	segSettings = "settings"
	segTitles   = "titles"
	segBullets  = "bullets"
)

var profileFields = map[string]bool{
	"name": true, "title": true, "phone": true, "email": true, "linkedin": true,
}

var itemFields = map[string]map[string]Policy{
	types.SectionExperience: {
		"role": Plain, "company": Plain, "duration": Plain, "location": Plain,
		"description": Rich,
	},
	types.SectionEducation: {
		"degree": Plain, "institution": Plain, "location": Plain, "year": Plain, "details": Plain,
	},
	types.SectionSkills: {
		"category": Plain, "items": Rich,
	},
	types.SectionProjects: {
		"title": Plain, "subtitle": Plain, "duration": Plain, "description": Rich,
	},
	types.SectionEngagements: {
		"title": Plain, "description": Rich,
	},
}

// Ref is a validated reference to one editable leaf of a Document.
// The zero value is not a valid Ref.
type Ref struct {
	kind    Kind
	section string // list section key, or the titled section key for KindTitle
	field   string
	index   int
	bullet  int
}

// Profile references profile.<field>.
func Profile(field string) (Ref, error) {
	if !profileFields[field] {
		return Ref{}, resolveErr(segProfile+"."+field, field, ErrUnknownField)
	}
	return Ref{kind: KindProfile, field: field}, nil
}

// Summary references the summary string.
func Summary() Ref {
	return Ref{kind: KindSummary}
}

// Title references settings.titles.<key>. Any key without dots is accepted,
// so titles can be set for sections the document does not render yet.
func Title(key string) (Ref, error) {
	if key == "" || strings.Contains(key, ".") {
		return Ref{}, resolveErr(segSettings+"."+segTitles+"."+key, key, ErrMalformed)
	}
	return Ref{kind: KindTitle, section: key}, nil
}

// Item references <section>.<index>.<field> and checks index against doc.
func Item(doc *types.Document, section string, index int, field string) (Ref, error) {
	path := section + "." + strconv.Itoa(index) + "." + field
	fields, ok := itemFields[section]
	if !ok {
		return Ref{}, resolveErr(path, section, ErrUnknownField)
	}
	if _, ok := fields[field]; !ok {
		return Ref{}, resolveErr(path, field, ErrUnknownField)
	}
	if err := checkIndex(doc, section, index, path); err != nil {
		return Ref{}, err
	}
	return Ref{kind: KindItem, section: section, index: index, field: field}, nil
}

// Bullet references <section>.<index>.bullets.<bullet>. Only experience and
// projects carry bullets.
func Bullet(doc *types.Document, section string, index, bullet int) (Ref, error) {
	path := section + "." + strconv.Itoa(index) + "." + segBullets + "." + strconv.Itoa(bullet)
	if section != types.SectionExperience && section != types.SectionProjects {
		return Ref{}, resolveErr(path, segBullets, ErrUnknownField)
	}
	if err := checkIndex(doc, section, index, path); err != nil {
		return Ref{}, err
	}
	if bullet < 0 || bullet >= len(bulletsOf(doc, section, index)) {
		return Ref{}, resolveErr(path, strconv.Itoa(bullet), ErrOutOfRange)
	}
	return Ref{kind: KindBullet, section: section, index: index, field: segBullets, bullet: bullet}, nil
}

// ParseRef parses a dotted path and validates it against doc.
func ParseRef(doc *types.Document, path string) (Ref, error) {
	p, err := Parse(path)
	if err != nil {
		return Ref{}, err
	}

	switch p[0] {
	case segProfile:
		if len(p) != 2 {
			return Ref{}, resolveErr(path, "", ErrMalformed)
		}
		return Profile(p[1])
	case types.SectionSummary:
		if len(p) != 1 {
			return Ref{}, resolveErr(path, p[1], ErrShape)
		}
		return Summary(), nil
	case segSettings:
		if len(p) != 3 || p[1] != segTitles {
			return Ref{}, resolveErr(path, "", ErrUnknownField)
		}
		return Title(p[2])
	}

	if _, ok := itemFields[p[0]]; !ok {
		return Ref{}, resolveErr(path, p[0], ErrUnknownField)
	}
	if len(p) < 3 {
		return Ref{}, resolveErr(path, "", ErrMalformed)
	}
	index, err := strconv.Atoi(p[1])
	if err != nil {
		return Ref{}, resolveErr(path, p[1], ErrMalformed)
	}

	if p[2] == segBullets {
		if len(p) != 4 {
			return Ref{}, resolveErr(path, "", ErrMalformed)
		}
		bullet, err := strconv.Atoi(p[3])
		if err != nil {
			return Ref{}, resolveErr(path, p[3], ErrMalformed)
		}
		return Bullet(doc, p[0], index, bullet)
	}
	if len(p) != 3 {
		return Ref{}, resolveErr(path, p[3], ErrShape)
	}
	return Item(doc, p[0], index, p[2])
}

// Kind returns what the reference addresses.
func (r Ref) Kind() Kind { return r.kind }

// Section returns the list section key, or the titled key for title refs.
func (r Ref) Section() string { return r.section }

// Index returns the list index for item and bullet refs.
func (r Ref) Index() int { return r.index }

// Policy returns the capture policy of the referenced field.
func (r Ref) Policy() Policy {
	switch r.kind {
	case KindSummary, KindBullet:
		return Rich
	case KindItem:
		return itemFields[r.section][r.field]
	default:
		return Plain
	}
}

// String renders the dotted path embedded in data-path attributes.
func (r Ref) String() string {
	switch r.kind {
	case KindProfile:
		return segProfile + "." + r.field
	case KindSummary:
		return types.SectionSummary
	case KindTitle:
		return segSettings + "." + segTitles + "." + r.section
	case KindItem:
		return r.section + "." + strconv.Itoa(r.index) + "." + r.field
	case KindBullet:
		return r.section + "." + strconv.Itoa(r.index) + "." + segBullets + "." + strconv.Itoa(r.bullet)
	default:
		return ""
	}
}

// Get reads the referenced leaf. It fails if the document changed shape since
// the reference was built.
func (r Ref) Get(doc *types.Document) (string, error) {
	if r.kind == KindTitle {
		return doc.Settings.Titles[r.section], nil
	}
	p, err := r.leaf(doc)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Set writes the referenced leaf. An unset title already displays as its
// key, so writing the key back leaves settings.titles untouched.
func (r Ref) Set(doc *types.Document, value string) error {
	if r.kind == KindTitle {
		if value == r.section && doc.Settings.Titles[r.section] == "" {
			return nil
		}
		doc.SetTitle(r.section, value)
		return nil
	}
	p, err := r.leaf(doc)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

func (r Ref) leaf(doc *types.Document) (*string, error) {
	path := r.String()
	switch r.kind {
	case KindProfile:
		return profileLeaf(&doc.Profile, r.field), nil
	case KindSummary:
		return &doc.Summary, nil
	case KindItem:
		if err := checkIndex(doc, r.section, r.index, path); err != nil {
			return nil, err
		}
		return itemLeaf(doc, r.section, r.index, r.field), nil
	case KindBullet:
		if err := checkIndex(doc, r.section, r.index, path); err != nil {
			return nil, err
		}
		bullets := bulletsOf(doc, r.section, r.index)
		if r.bullet >= len(bullets) {
			return nil, resolveErr(path, strconv.Itoa(r.bullet), ErrOutOfRange)
		}
		return &bullets[r.bullet], nil
	default:
		return nil, resolveErr(path, "", ErrMalformed)
	}
}

func checkIndex(doc *types.Document, section string, index int, path string) error {
	n, ok := doc.ItemCount(section)
	if !ok {
		return resolveErr(path, section, ErrUnknownField)
	}
	if index < 0 || index >= n {
		return resolveErr(path, strconv.Itoa(index), ErrOutOfRange)
	}
	return nil
}

// bulletsOf returns the bullet slice of an item; callers check the index first.
func bulletsOf(doc *types.Document, section string, index int) []string {
	switch section {
	case types.SectionExperience:
		return doc.Experience[index].Bullets
	case types.SectionProjects:
		return doc.Projects[index].Bullets
	}
	return nil
}

func profileLeaf(p *types.Profile, field string) *string {
	switch field {
	case "name":
		return &p.Name
	case "title":
		return &p.Title
	case "phone":
		return &p.Phone
	case "email":
		return &p.Email
	default:
		return &p.LinkedIn
	}
}

// itemLeaf maps a validated (section, index, field) triple to its struct field.
func itemLeaf(doc *types.Document, section string, index int, field string) *string {
	switch section {
	case types.SectionExperience:
		e := &doc.Experience[index]
		switch field {
		case "role":
			return &e.Role
		case "company":
			return &e.Company
		case "duration":
			return &e.Duration
		case "location":
			return &e.Location
		default:
			return &e.Description
		}
	case types.SectionEducation:
		e := &doc.Education[index]
		switch field {
		case "degree":
			return &e.Degree
		case "institution":
			return &e.Institution
		case "location":
			return &e.Location
		case "year":
			return &e.Year
		default:
			return &e.Details
		}
	case types.SectionSkills:
		s := &doc.Skills[index]
		if field == "category" {
			return &s.Category
		}
		return &s.Items
	case types.SectionProjects:
		p := &doc.Projects[index]
		switch field {
		case "title":
			return &p.Title
		case "subtitle":
			return &p.Subtitle
		case "duration":
			return &p.Duration
		default:
			return &p.Description
		}
	default:
		e := &doc.Engagements[index]
		if field == "title" {
			return &e.Title
		}
		return &e.Description
	}
}

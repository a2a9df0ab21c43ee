package models

// Kind describes one of the four parallel record tables.
type Kind struct {
	// Name is the plural identifier used in URLs and the admin type filter.
	Name string
	// Label is the singular display name.
	Label string
	Table string
	// Columns are the data columns in the order Record.Fields and Record.Values use.
	Columns []string
}

// IDKey is the JSON key that carries a newly created id, e.g. "patentId".
func (k Kind) IDKey() string {
	return lowerFirst(k.Label) + "Id"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

var (
	Patents = Kind{
		Name:    "patents",
		Label:   "Patent",
		Table:   "patents",
		Columns: []string{"title", "description", "date"},
	}
	Publications = Kind{
		Name:    "publications",
		Label:   "Publication",
		Table:   "publications",
		Columns: []string{"title", "authors", "description", "published_date"},
	}
	Events = Kind{
		Name:    "events",
		Label:   "Event",
		Table:   "events",
		Columns: []string{"title", "description", "location", "date"},
	}
	Conferences = Kind{
		Name:    "conferences",
		Label:   "Conference",
		Table:   "conferences",
		Columns: []string{"title", "description", "location", "conference_date"},
	}
)

// Kinds lists every record kind.
var Kinds = []Kind{Patents, Publications, Events, Conferences}

// KindByName looks up a kind by its plural name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// Ownership holds the columns every record kind shares.
type Ownership struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	// Username is only populated by cross-owner admin listings.
	Username string `json:"username,omitempty"`
}

// Owned returns the shared ownership columns.
func (o *Ownership) Owned() *Ownership {
	return o
}

// Record is implemented by pointers to Patent, Publication, Event and Conference.
type Record interface {
	Owned() *Ownership
	// Fields returns pointers to the data fields, for scanning.
	Fields() []any
	// Values returns the data field values, for inserts and updates.
	Values() []any
}

type Patent struct {
	Ownership
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        Date   `json:"date"`
}

func (p *Patent) Fields() []any { return []any{&p.Title, &p.Description, &p.Date} }
func (p *Patent) Values() []any { return []any{p.Title, p.Description, p.Date} }

type Publication struct {
	Ownership
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Description   string `json:"description"`
	PublishedDate Date   `json:"published_date"`
}

func (p *Publication) Fields() []any {
	return []any{&p.Title, &p.Authors, &p.Description, &p.PublishedDate}
}

func (p *Publication) Values() []any {
	return []any{p.Title, p.Authors, p.Description, p.PublishedDate}
}

type Event struct {
	Ownership
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        Date   `json:"date"`
}

func (e *Event) Fields() []any { return []any{&e.Title, &e.Description, &e.Location, &e.Date} }
func (e *Event) Values() []any { return []any{e.Title, e.Description, e.Location, e.Date} }

type Conference struct {
	Ownership
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	ConferenceDate Date   `json:"conference_date"`
}

func (c *Conference) Fields() []any {
	return []any{&c.Title, &c.Description, &c.Location, &c.ConferenceDate}
}

func (c *Conference) Values() []any {
	return []any{c.Title, c.Description, c.Location, c.ConferenceDate}
}

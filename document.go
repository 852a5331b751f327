package trivia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Document is the assembled output for one accepted character page: the
// character record, the timeline sections in page order, and the appearance
// index. Store metadata lives outside the wire format.
type Document struct {
	ID          string    `json:"-"`
	Title       string    `json:"-"`
	ContentHash string    `json:"-"`
	ExtractedAt time.Time `json:"-"`

	Character   CharacterRecord
	Sections    []Section
	Appearances AppearanceIndex
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if err := d.Character.Validate(); err != nil {
		return err
	}
	for _, s := range d.Sections {
		for _, e := range s.Events {
			if e.ContentType == "" {
				return Errorf(EINVALID, "section %q has event without content type", s.Name)
			}
		}
	}
	return nil
}

// TimelineEventCount returns the total number of events across all sections.
func (d *Document) TimelineEventCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Events)
	}
	return n
}

// IsStub reports whether a document carries too little substantive content
// to keep at assembly time: no timeline events and no appearances, or no
// timeline events and nothing beyond bare attributes (no quote, no
// description, no family graph).
func IsStub(d *Document) bool {
	events := d.TimelineEventCount()
	if events == 0 && d.Appearances.Count() == 0 {
		return true
	}
	if events == 0 && d.Character.Quote == nil &&
		d.Character.Description == "" && d.Character.Family.Empty() {
		return true
	}
	return false
}

// IsMinimal is the stricter maintenance-pass variant of the stub policy:
// any document without timeline events is out, as is a single-appearance
// document with at most two events. Applied post-hoc, never at assembly.
func IsMinimal(d *Document) bool {
	events := d.TimelineEventCount()
	if events == 0 {
		return true
	}
	if d.Appearances.Count() == 1 && events <= 2 {
		return true
	}
	return false
}

// MarshalJSON emits the collaborator wire format: the character record under
// "character", each timeline section as a dynamically named top-level key in
// page order, and the appearance index under "appearances".
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeMember := func(key string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}

	if err := writeMember("character", d.Character); err != nil {
		return nil, err
	}
	for _, s := range d.Sections {
		if err := writeMember(s.Name, s.Events); err != nil {
			return nil, err
		}
	}
	if err := writeMember("appearances", d.Appearances); err != nil {
		return nil, err
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the wire format back, preserving section order.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("document: expected object, got %v", tok)
	}

	d.Sections = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("document: expected object key, got %v", tok)
		}
		switch key {
		case "character":
			if err := dec.Decode(&d.Character); err != nil {
				return err
			}
		case "appearances":
			if err := dec.Decode(&d.Appearances); err != nil {
				return err
			}
		default:
			var events []TimelineEvent
			if err := dec.Decode(&events); err != nil {
				return err
			}
			d.Sections = append(d.Sections, Section{Name: key, Events: events})
		}
	}
	if d.Title == "" {
		d.Title = d.Character.Name
	}

	// Consume the closing brace.
	_, err = dec.Token()
	return err
}

// DocumentWriter writes assembled documents to storage.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID    *string
	Title *string

	Offset int
	Limit  int
}

// DocumentStore persists and retrieves assembled documents. The maintenance
// cleanup pass deletes whole documents through it but never mutates a kept
// one.
type DocumentStore interface {
	// CreateDocument stores a new document, assigning ID, content hash,
	// and extraction timestamp.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByTitle retrieves a document by page title.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByTitle(ctx context.Context, title string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if the document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

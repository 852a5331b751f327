package trivia

import "encoding/json"

// ContentType classifies what kind of prose a timeline event carries.
type ContentType string

// Content types for TimelineEvent.
const (
	ContentEvent        ContentType = "event"
	ContentBackground   ContentType = "background"
	ContentRelationship ContentType = "relationship"
)

// TimelineEvent is one classified paragraph of a timeline section.
// Series and Episode are set when the paragraph carried an episode
// citation; the citation markup itself is removed from Text.
type TimelineEvent struct {
	ContentType ContentType
	Text        string
	Series      string
	Episode     string
}

// Section is a named timeline section with its events in narrative order.
type Section struct {
	Name   string
	Events []TimelineEvent
}

// timelineEventJSON is the wire shape of a TimelineEvent. The prose field
// is keyed by the content type ("event", "background", "relationship"),
// matching the collaborator contract downstream consumers read.
type timelineEventJSON struct {
	ContentType  ContentType `json:"content_type"`
	Event        string      `json:"event,omitempty"`
	Background   string      `json:"background,omitempty"`
	Relationship string      `json:"relationship,omitempty"`
	Series       string      `json:"series,omitempty"`
	Episode      string      `json:"episode,omitempty"`
}

// MarshalJSON places the event text under the key named by its content type.
func (e TimelineEvent) MarshalJSON() ([]byte, error) {
	w := timelineEventJSON{
		ContentType: e.ContentType,
		Series:      e.Series,
		Episode:     e.Episode,
	}
	switch e.ContentType {
	case ContentBackground:
		w.Background = e.Text
	case ContentRelationship:
		w.Relationship = e.Text
	default:
		w.Event = e.Text
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts the text from whichever content-type key is set.
func (e *TimelineEvent) UnmarshalJSON(data []byte) error {
	var w timelineEventJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.ContentType = w.ContentType
	e.Series = w.Series
	e.Episode = w.Episode
	switch {
	case w.Event != "":
		e.Text = w.Event
	case w.Background != "":
		e.Text = w.Background
	case w.Relationship != "":
		e.Text = w.Relationship
	}
	return nil
}

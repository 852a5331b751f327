// Package trivia converts encyclopedia-style wiki markup pages describing
// fictional characters into normalized structured records: sidebar
// attributes, a typed family graph, per-episode appearances, a
// representative quote, and a segmented narrative timeline.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, goquery/); the
// parsing engine itself lives in wikitext/ and extract/.
package trivia

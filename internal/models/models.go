// package models defines the data model for the song injector
package models

import (
	"fmt"
	"strings"
)

// SubcatNull is the literal VerseVIEW stores in subcat for songs without a sub-category.
const SubcatNull = "null"

// Song is one row of the VerseVIEW song table.
//
// Font2 and Timestamp are nullable columns; nil stores NULL.
type Song struct {
	ID              int
	Name            string
	Category        string
	Font            string
	Font2           *string
	Timestamp       *string
	YVideo          string
	Background      string
	Key             string
	Copyright       string
	Notes           string
	Lyrics          string
	Lyrics2         string
	Title2          string
	Tags            string
	SlideSeq        int
	Rating          int
	ChordsAvailable int
	UsageCount      int
	Subcat          string
}

// NewSong builds a freshly injected song: real values for id, name, category,
// font and lyrics; empty or zero secondary fields; subcat set to [SubcatNull].
func NewSong(id int, name, category, font, lyrics string) *Song {
	return &Song{
		ID:       id,
		Name:     name,
		Category: category,
		Font:     font,
		Lyrics:   lyrics,
		Subcat:   SubcatNull,
	}
}

// Validate checks that the song can be stored.
func (s *Song) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("invalid song id %d", s.ID)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("song name is required")
	}
	return nil
}

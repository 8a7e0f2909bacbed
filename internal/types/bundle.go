// Package types provides shared types used across multiple packages.
// This package has no dependencies on other casebundle packages to avoid import cycles.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// BundleDocument is one physical source PDF included in a bundle.
// It is owned by the caller; the compiler only reads it.
type BundleDocument struct {
	ID          string `json:"id" yaml:"id"`
	FilePath    string `json:"file_path" yaml:"file_path"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	PageCount   int    `json:"page_count" yaml:"page_count"` // Must be >= 1
}

// TOCEntry is a contiguous page range in the bundle.
// EndPage == StartPage + PageCount - 1.
type TOCEntry struct {
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	StartPage   int    `json:"start_page" yaml:"start_page"`
	EndPage     int    `json:"end_page" yaml:"end_page"`
	PageCount   int    `json:"page_count" yaml:"page_count"`

	// FirstLabel and LastLabel are the printed page labels when they differ
	// from the physical page numbers (sub-numbered late inserts).
	FirstLabel string `json:"first_label,omitempty" yaml:"first_label,omitempty"`
	LastLabel  string `json:"last_label,omitempty" yaml:"last_label,omitempty"`
}

// Pagination formats.
const (
	FormatPageXOfY = "Page X of Y"
	FormatPageX    = "Page X"
	FormatX        = "X"
)

// Stamp positions.
const (
	PositionTopRight     = "top-right"
	PositionBottomCenter = "bottom-center"
	PositionTopCenter    = "top-center"
)

// PaginationStyle configures how page stamps are rendered.
type PaginationStyle struct {
	Format   string  `json:"format" yaml:"format" mapstructure:"format"`       // "Page X of Y", "Page X", "X"
	Position string  `json:"position" yaml:"position" mapstructure:"position"` // "top-right", "bottom-center", "top-center"
	FontSize float64 `json:"font_size" yaml:"font_size" mapstructure:"font_size"`
}

// DefaultPaginationStyle returns "Page X of Y" at the top right in 10pt.
func DefaultPaginationStyle() PaginationStyle {
	return PaginationStyle{
		Format:   FormatPageXOfY,
		Position: PositionTopRight,
		FontSize: 10,
	}
}

// Validate checks that format and position are known values.
func (s PaginationStyle) Validate() error {
	switch s.Format {
	case FormatPageXOfY, FormatPageX, FormatX:
	default:
		return fmt.Errorf("unknown pagination format %q", s.Format)
	}
	switch s.Position {
	case PositionTopRight, PositionBottomCenter, PositionTopCenter:
	default:
		return fmt.Errorf("unknown pagination position %q", s.Position)
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", s.FontSize)
	}
	return nil
}

// SubPageNumber is a lettered page number for late inserts (45A, 45B, ...).
type SubPageNumber struct {
	BasePage int  `json:"base_page"`
	Suffix   rune `json:"suffix"`
}

type subPageNumberJSON struct {
	BasePage int    `json:"base_page"`
	Suffix   string `json:"suffix"`
}

// MarshalJSON writes the suffix as a letter ("A") rather than a code point.
func (s SubPageNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(subPageNumberJSON{BasePage: s.BasePage, Suffix: string(s.Suffix)})
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (s *SubPageNumber) UnmarshalJSON(data []byte) error {
	var v subPageNumberJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	r, size := utf8.DecodeRuneInString(v.Suffix)
	if r == utf8.RuneError || size != len(v.Suffix) {
		return fmt.Errorf("invalid sub page suffix %q", v.Suffix)
	}
	s.BasePage, s.Suffix = v.BasePage, r
	return nil
}

// MaxSubPageIndex is the last insertion index with its own letter.
// Larger indexes collapse onto 'Z'.
const MaxSubPageIndex = 25

// NewSubPageNumber returns the sub-number for the index-th insert after basePage.
// Index 0 is 'A'; indexes beyond 25 are clamped to 'Z'.
func NewSubPageNumber(basePage, index int) SubPageNumber {
	if index < 0 {
		index = 0
	}
	return SubPageNumber{
		BasePage: basePage,
		Suffix:   'A' + rune(min(index, MaxSubPageIndex)),
	}
}

// String returns the printed form, e.g. "45A".
func (s SubPageNumber) String() string {
	return strconv.Itoa(s.BasePage) + string(s.Suffix)
}

// LateInsertMode selects how documents added after numbering was fixed are paginated.
type LateInsertMode string

const (
	// Repaginate renumbers every page after the insert.
	Repaginate LateInsertMode = "repaginate"
	// SubNumber letters the inserted pages (45A, 45B) and leaves later numbers alone.
	SubNumber LateInsertMode = "sub_number"
)

// DefaultLateInsertMode is Repaginate.
const DefaultLateInsertMode = Repaginate

// ParseLateInsertMode converts a string to a LateInsertMode.
// The empty string maps to the default.
func ParseLateInsertMode(s string) (LateInsertMode, error) {
	switch s {
	case "", string(Repaginate):
		return Repaginate, nil
	case string(SubNumber), "subnumber", "sub-number":
		return SubNumber, nil
	default:
		return "", fmt.Errorf("unknown late insert mode %q", s)
	}
}

// LateInsert describes documents inserted into an already numbered bundle.
type LateInsert struct {
	Mode LateInsertMode `json:"mode" yaml:"mode"`
	// After is the 0-based index of the document the inserts follow.
	After int `json:"after" yaml:"after"`
	// Count is how many documents following After are inserts.
	Count int `json:"count" yaml:"count"`
}

// Validate checks the mode and rejects negative positions and counts.
func (l LateInsert) Validate() error {
	if _, err := ParseLateInsertMode(string(l.Mode)); err != nil {
		return err
	}
	if l.After < 0 {
		return fmt.Errorf("late insert after must not be negative, got %d", l.After)
	}
	if l.Count < 0 {
		return fmt.Errorf("late insert count must not be negative, got %d", l.Count)
	}
	return nil
}

// Package layout models the customizable dashboard: an ordered set of sections
// that can be reordered, hidden, resized, reset or replaced by a preset.
//
// The functions in reducer.go are pure; Manager wraps them with persistence.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"
)

type Component string

const (
	ComponentSummaryCards     Component = "summary-cards"
	ComponentPerformanceChart Component = "performance-chart"
	ComponentPortfolioList    Component = "portfolio-list"
	ComponentTopCryptos       Component = "top-cryptos"
)

func (c Component) Valid() bool {
	switch c {
	case ComponentSummaryCards, ComponentPerformanceChart, ComponentPortfolioList, ComponentTopCryptos:
		return true
	}
	return false
}

type Size string

const (
	SizeFull          Size = "full"
	SizeHalf          Size = "half"
	SizeQuarter       Size = "quarter"
	SizeThreeQuarters Size = "three-quarters"
)

func (s Size) Valid() bool {
	switch s {
	case SizeFull, SizeHalf, SizeQuarter, SizeThreeQuarters:
		return true
	}
	return false
}

// Section is one independently positionable dashboard panel. Order defines the
// display sequence and need not be contiguous.
type Section struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Enabled   bool      `json:"enabled"`
	Order     int       `json:"order"`
	Component Component `json:"component"`
	Size      Size      `json:"size"`
}

type Layout struct {
	Sections     []Section `json:"sections"`
	LastModified time.Time `json:"lastModified"`
}

var ErrInvalidLayout = errors.New("invalid layout")

// Validate checks the structural rules a stored layout must satisfy before it
// can replace the default.
func (l Layout) Validate() error {
	if len(l.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidLayout)
	}
	seen := make(map[string]struct{}, len(l.Sections))
	for _, s := range l.Sections {
		if s.ID == "" {
			return fmt.Errorf("%w: section with empty id", ErrInvalidLayout)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalidLayout, s.ID)
		}
		seen[s.ID] = struct{}{}
		if !s.Component.Valid() {
			return fmt.Errorf("%w: section %q has unknown component %q", ErrInvalidLayout, s.ID, s.Component)
		}
		if !s.Size.Valid() {
			return fmt.Errorf("%w: section %q has unknown size %q", ErrInvalidLayout, s.ID, s.Size)
		}
	}
	return nil
}

// Section returns the section with the given id.
func (l Layout) Section(id string) (Section, bool) {
	i := l.index(id)
	if i < 0 {
		return Section{}, false
	}
	return l.Sections[i], true
}

func (l Layout) index(id string) int {
	return slices.IndexFunc(l.Sections, func(s Section) bool { return s.ID == id })
}

func (l Layout) clone() Layout {
	return Layout{Sections: slices.Clone(l.Sections), LastModified: l.LastModified}
}

// EnabledSections yields the enabled sections in ascending order. The filter
// and sort run again on every range over the returned sequence.
func (l Layout) EnabledSections() iter.Seq[Section] {
	return func(yield func(Section) bool) {
		enabled := make([]Section, 0, len(l.Sections))
		for _, s := range l.Sections {
			if s.Enabled {
				enabled = append(enabled, s)
			}
		}
		slices.SortStableFunc(enabled, byOrder)
		for _, s := range enabled {
			if !yield(s) {
				return
			}
		}
	}
}

func byOrder(a, b Section) int {
	return a.Order - b.Order
}

// Encode serializes the layout into its persisted form.
func Encode(l Layout) (string, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted layout and validates it.
func Decode(raw string) (Layout, error) {
	var l Layout
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

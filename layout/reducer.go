package layout

import (
	"slices"
	"time"
)

// Each reducer returns the next layout and whether anything changed. When
// nothing changed the input is returned as-is, including its LastModified.
// Reducers never modify the layout they are given.

// Reorder swaps the order values of two sections and re-sorts the layout.
func Reorder(l Layout, activeID, overID string, now time.Time) (Layout, bool) {
	if activeID == overID {
		return l, false
	}
	ai, oi := l.index(activeID), l.index(overID)
	if ai < 0 || oi < 0 {
		return l, false
	}

	next := l.clone()
	next.Sections[ai].Order, next.Sections[oi].Order = next.Sections[oi].Order, next.Sections[ai].Order
	slices.SortStableFunc(next.Sections, byOrder)
	next.LastModified = now
	return next, true
}

func ToggleVisibility(l Layout, sectionID string, now time.Time) (Layout, bool) {
	i := l.index(sectionID)
	if i < 0 {
		return l, false
	}

	next := l.clone()
	next.Sections[i].Enabled = !next.Sections[i].Enabled
	next.LastModified = now
	return next, true
}

// Resize sets the size of one section. Unknown sizes are ignored like unknown ids.
func Resize(l Layout, sectionID string, size Size, now time.Time) (Layout, bool) {
	i := l.index(sectionID)
	if i < 0 || !size.Valid() {
		return l, false
	}

	next := l.clone()
	next.Sections[i].Size = size
	next.LastModified = now
	return next, true
}

func ResetToDefault(_ Layout, now time.Time) (Layout, bool) {
	return Default(now), true
}

// ApplyPreset overwrites the whole layout with the named preset.
func ApplyPreset(l Layout, name string, now time.Time) (Layout, bool) {
	p, ok := Preset(name, now)
	if !ok {
		return l, false
	}
	return p, true
}

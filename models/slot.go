package models

import "path/filepath"

// SlotCount is the fixed number of launcher slots
const SlotCount = 6

const (
	LabelSelect = "Select"
	LabelOpen   = "Open"

	// PlaceholderName is shown for a slot with no path
	PlaceholderName = "No file selected"
)

// Slot is one launcher position. An empty Path means unassigned.
type Slot struct {
	Path string
}

// Assigned reports whether the slot holds a path
func (s Slot) Assigned() bool {
	return s.Path != ""
}

// Label returns the button text for the slot
func (s Slot) Label() string {
	if s.Assigned() {
		return LabelOpen
	}
	return LabelSelect
}

// DisplayName returns the base name of the path or the placeholder text
func (s Slot) DisplayName() string {
	if !s.Assigned() {
		return PlaceholderName
	}
	return filepath.Base(s.Path)
}

// Slots is the full, ordered set of launcher positions
type Slots [SlotCount]Slot

// FromPaths builds slots from a path list, padding short lists with empty
// slots and dropping anything past SlotCount.
func FromPaths(paths []string) Slots {
	var slots Slots
	for i := 0; i < SlotCount && i < len(paths); i++ {
		slots[i].Path = paths[i]
	}
	return slots
}

// Paths returns the slot paths, always SlotCount entries long
func (s Slots) Paths() []string {
	paths := make([]string, SlotCount)
	for i, slot := range s {
		paths[i] = slot.Path
	}
	return paths
}

// Labels returns the button text of every slot
func (s Slots) Labels() []string {
	labels := make([]string, SlotCount)
	for i, slot := range s {
		labels[i] = slot.Label()
	}
	return labels
}

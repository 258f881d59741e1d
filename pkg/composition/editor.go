// Package composition maintains a wine's grape composition: an ordered set
// of (variety, percent) entries with an auto-rebalancing allocation rule.
package composition

// Varieties reports whether a grape variety id exists in the master data.
// *taxonomy.Catalog satisfies it.
type Varieties interface {
	HasGrape(id uint) bool
}

type Entry struct {
	GrapeVarietyID uint
	Percent        int64
}

// Editor holds the working composition of one dialog. Display order is
// insertion order, keys are unique. Add and Remove rebalance every entry to
// floor(100/n); with n not dividing 100 evenly the total settles under 100
// (3 varieties -> 33/33/33 = 99). That slack is intentional and is not
// corrected anywhere. A manual SetPercent touches only its own entry.
type Editor struct {
	varieties Varieties
	entries   []Entry
	index     map[uint]int
}

func NewEditor(varieties Varieties) *Editor {
	return &Editor{varieties: varieties, index: make(map[uint]int)}
}

// Add appends a variety and rebalances. It is a no-op when the variety is
// already present or unknown to the master data.
func (e *Editor) Add(varietyID uint) bool {
	if _, present := e.index[varietyID]; present {
		return false
	}

	if !e.varieties.HasGrape(varietyID) {
		return false
	}

	e.index[varietyID] = len(e.entries)
	e.entries = append(e.entries, Entry{GrapeVarietyID: varietyID})
	e.rebalance()

	return true
}

// Remove deletes a variety and rebalances the remainder.
func (e *Editor) Remove(varietyID uint) bool {
	position, present := e.index[varietyID]
	if !present {
		return false
	}

	e.entries = append(e.entries[:position], e.entries[position+1:]...)
	delete(e.index, varietyID)

	for follower := position; follower < len(e.entries); follower++ {
		e.index[e.entries[follower].GrapeVarietyID] = follower
	}

	e.rebalance()

	return true
}

// SetPercent overrides a single entry's percentage without touching the
// others, so the running total may diverge from 100. Values outside 0-100
// are rejected.
func (e *Editor) SetPercent(varietyID uint, percent int64) bool {
	if percent < 0 || percent > 100 {
		return false
	}

	position, present := e.index[varietyID]
	if !present {
		return false
	}

	e.entries[position].Percent = percent

	return true
}

// Entries returns a copy of the composition in display order.
func (e *Editor) Entries() []Entry {
	entries := make([]Entry, len(e.entries))
	copy(entries, e.entries)

	return entries
}

func (e *Editor) Len() int {
	return len(e.entries)
}

// Total is the running percentage sum shown to the user. It is display-only
// and never enforced.
func (e *Editor) Total() int64 {
	var total int64

	for _, entry := range e.entries {
		total += entry.Percent
	}

	return total
}

func (e *Editor) rebalance() {
	if len(e.entries) == 0 {
		return
	}

	share := int64(100 / len(e.entries))

	for position := range e.entries {
		e.entries[position].Percent = share
	}
}

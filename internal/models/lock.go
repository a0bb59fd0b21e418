package models

import "time"

// Section identifies a lockable content category.
type Section string

const (
	SectionNotices   Section = "notices"
	SectionHomework  Section = "homework"
	SectionRoutine   Section = "routine"
	SectionClassTime Section = "classTime"
)

// Sections lists every known section in a stable order.
func Sections() []Section {
	return []Section{SectionNotices, SectionHomework, SectionRoutine, SectionClassTime}
}

// ParseSection validates a section name. The second return is false for
// unknown names.
func ParseSection(raw string) (Section, bool) {
	switch Section(raw) {
	case SectionNotices, SectionHomework, SectionRoutine, SectionClassTime:
		return Section(raw), true
	default:
		return "", false
	}
}

// MasterLock is the single global lock row.
type MasterLock struct {
	Locked    bool      `db:"locked" json:"locked"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SectionLock is a per-section lock row. A missing row means unlocked.
type SectionLock struct {
	Section   Section   `db:"section" json:"section"`
	Locked    bool      `db:"locked" json:"locked"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ItemLock is a per-record lock row keyed by (section, item id).
type ItemLock struct {
	Section   Section   `db:"section" json:"section"`
	ItemID    int64     `db:"item_id" json:"item_id"`
	Locked    bool      `db:"locked" json:"locked"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SectionSnapshot is the shared per-section view lock consumers read: the
// master flag, the section flag, and every locked item in the section.
type SectionSnapshot struct {
	Section     Section        `json:"section"`
	Master      bool           `json:"master"`
	Locked      bool           `json:"locked"`
	Items       map[int64]bool `json:"items"`
	RefreshedAt time.Time      `json:"refreshed_at"`
}

// ItemLocked reports the item flag; absent ids are unlocked.
func (s SectionSnapshot) ItemLocked(id int64) bool {
	if s.Items == nil {
		return false
	}
	return s.Items[id]
}

// LockOverview aggregates lock state for the admin console.
type LockOverview struct {
	Master   bool                  `json:"master"`
	Sections map[Section]bool      `json:"sections"`
	Items    map[Section][]ItemLock `json:"items"`
}

package domain

// LocationType classifies a location
type LocationType string

const (
	LocationTown    LocationType = "TOWN"
	LocationField   LocationType = "FIELD"
	LocationDungeon LocationType = "DUNGEON"
)

// Location is read-only reference data
type Location struct {
	ID       int64        `json:"id" db:"location_id"`
	Name     string       `json:"name" db:"name"`
	MinLevel int          `json:"min_level" db:"min_level"`
	Type     LocationType `json:"type" db:"location_type"`
	IsActive bool         `json:"is_active" db:"is_active"`
}

// Accessible reports whether a character of the given level may enter
func (l Location) Accessible(level int) bool {
	return l.IsActive && l.MinLevel <= level
}

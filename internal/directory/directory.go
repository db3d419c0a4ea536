package directory

import "fmt"

// Lookup resolves a charger identifier to its display name.
type Lookup interface {
	NameOf(chargerID string) string
}

// Static is a fixed in-memory charger catalog.
type Static struct {
	names map[string]string
}

// NewStatic builds a catalog from an id -> name map. A nil map is allowed.
func NewStatic(names map[string]string) *Static {
	if names == nil {
		names = make(map[string]string)
	}
	return &Static{names: names}
}

// NameOf returns the catalog name, or a generic label for unknown chargers.
func (s *Static) NameOf(chargerID string) string {
	if name, ok := s.names[chargerID]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Charger %s", chargerID)
}

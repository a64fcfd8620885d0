package models

// SpendType classifies a category for budget-health reporting.
type SpendType string

const (
	SpendEssential SpendType = "Essential"
	SpendLifestyle SpendType = "Lifestyle"
	// SpendUndefined is used when the row carries no category at all.
	SpendUndefined SpendType = "Undefined"
)

// Label returns the display label used by the Portuguese-language reports.
func (s SpendType) Label() string {
	switch s {
	case SpendEssential:
		return "Essencial"
	case SpendLifestyle:
		return "Estilo de Vida"
	default:
		return "Indefinido"
	}
}

// EssentialSet is a case-sensitive set of category names.
type EssentialSet map[string]struct{}

// NewEssentialSet builds a set from the given category names.
func NewEssentialSet(categories []string) EssentialSet {
	set := make(EssentialSet, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return set
}

// Contains reports whether category is in the set. The match is exact.
func (s EssentialSet) Contains(category string) bool {
	_, ok := s[category]
	return ok
}

// Classify maps a normalized category to its spend type.
func (s EssentialSet) Classify(category string) SpendType {
	if category == "" {
		return SpendUndefined
	}
	if s.Contains(category) {
		return SpendEssential
	}
	return SpendLifestyle
}

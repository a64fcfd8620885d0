package store

// MockCategoryStore is a mock implementation of CategoryProvider for testing.
type MockCategoryStore struct {
	Essential []string
	Err       error
}

// EssentialCategories returns the mock set, or fallback when it is empty.
func (m *MockCategoryStore) EssentialCategories(fallback []string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Essential) == 0 {
		return fallback, nil
	}
	return m.Essential, nil
}

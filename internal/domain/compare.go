package domain

// MaxCompareItems bounds the compare tray. Three items is the most the
// comparison table renders side by side.
const MaxCompareItems = 3

// MinCompareItems is the smallest set worth comparing.
const MinCompareItems = 2

// CompareSet is an ordered, bounded set of product IDs a shopper has
// selected for side-by-side comparison. The zero value is usable.
type CompareSet struct {
	ProductIDs []string `json:"product_ids"`
}

// Contains reports whether the product is already in the set.
func (s *CompareSet) Contains(productID string) bool {
	for _, id := range s.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Add puts the product in the set and returns true. Adding a product
// already present removes it instead (toggle semantics) and returns
// true. When the set is full and the product is not present, Add is a
// no-op and returns false.
func (s *CompareSet) Add(productID string) bool {
	if s.Contains(productID) {
		s.Remove(productID)
		return true
	}
	if len(s.ProductIDs) >= MaxCompareItems {
		return false
	}
	s.ProductIDs = append(s.ProductIDs, productID)
	return true
}

// Remove takes the product out of the set, reporting whether it was present.
func (s *CompareSet) Remove(productID string) bool {
	for i, id := range s.ProductIDs {
		if id == productID {
			s.ProductIDs = append(s.ProductIDs[:i], s.ProductIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the set.
func (s *CompareSet) Clear() {
	s.ProductIDs = nil
}

// Size returns the number of products in the set.
func (s *CompareSet) Size() int {
	return len(s.ProductIDs)
}

// CanCompare reports whether the set holds enough products for a
// side-by-side view.
func (s *CompareSet) CanCompare() bool {
	return len(s.ProductIDs) >= MinCompareItems
}

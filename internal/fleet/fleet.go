// Package fleet derives unit availability for the fixed pool of rentable
// VR units.  The pool is not a stored entity: unit identifiers are simply
// the integers 1..PoolSize, and availability is the complement of the
// currently rented set within that range.
package fleet

// PoolSize is the number of rentable VR units in the fleet.
const PoolSize = 50

// Status summarizes fleet availability at a single evaluation instant.
// NextAvailableID is nil when every unit in the pool is rented.
type Status struct {
	AvailableCount  int  `json:"availableCount"`
	RentedCount     int  `json:"rentedCount"`
	NextAvailableID *int `json:"nextAvailableId"`
}

// Derive computes availability from the set of rented unit ids.  Duplicate
// ids are collapsed and ids outside 1..PoolSize are ignored, so the
// invariant AvailableCount+RentedCount == PoolSize always holds.  The next
// available id is the smallest free unit, found by a linear scan over the
// dense integer range.
func Derive(rented []int) Status {
	var taken [PoolSize + 1]bool
	count := 0
	for _, id := range rented {
		if id < 1 || id > PoolSize {
			continue
		}
		if !taken[id] {
			taken[id] = true
			count++
		}
	}
	st := Status{
		AvailableCount: PoolSize - count,
		RentedCount:    count,
	}
	for id := 1; id <= PoolSize; id++ {
		if !taken[id] {
			next := id
			st.NextAvailableID = &next
			break
		}
	}
	return st
}

// InPool reports whether id identifies a unit of the fleet.
func InPool(id int) bool {
	return id >= 1 && id <= PoolSize
}

package fleet

import "testing"

func intPtr(v int) *int { return &v }

func TestDerive(t *testing.T) {
	tests := []struct {
		name          string
		rented        []int
		wantAvailable int
		wantRented    int
		wantNext      *int
	}{
		{
			name:          "empty ledger",
			rented:        nil,
			wantAvailable: 50,
			wantRented:    0,
			wantNext:      intPtr(1),
		},
		{
			name:          "units 3 and 7 rented keeps 1 free",
			rented:        []int{3, 7},
			wantAvailable: 48,
			wantRented:    2,
			wantNext:      intPtr(1),
		},
		{
			name:          "lowest units rented moves next forward",
			rented:        []int{1, 2, 3},
			wantAvailable: 47,
			wantRented:    3,
			wantNext:      intPtr(4),
		},
		{
			name:          "duplicate ids counted once",
			rented:        []int{5, 5, 5},
			wantAvailable: 49,
			wantRented:    1,
			wantNext:      intPtr(1),
		},
		{
			name:          "ids outside the pool are ignored",
			rented:        []int{0, -3, 51, 99},
			wantAvailable: 50,
			wantRented:    0,
			wantNext:      intPtr(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Derive(tt.rented)
			if st.AvailableCount != tt.wantAvailable {
				t.Errorf("AvailableCount = %d, want %d", st.AvailableCount, tt.wantAvailable)
			}
			if st.RentedCount != tt.wantRented {
				t.Errorf("RentedCount = %d, want %d", st.RentedCount, tt.wantRented)
			}
			switch {
			case tt.wantNext == nil && st.NextAvailableID != nil:
				t.Errorf("NextAvailableID = %d, want nil", *st.NextAvailableID)
			case tt.wantNext != nil && st.NextAvailableID == nil:
				t.Errorf("NextAvailableID = nil, want %d", *tt.wantNext)
			case tt.wantNext != nil && *st.NextAvailableID != *tt.wantNext:
				t.Errorf("NextAvailableID = %d, want %d", *st.NextAvailableID, *tt.wantNext)
			}
		})
	}
}

func TestDeriveFullPool(t *testing.T) {
	rented := make([]int, 0, PoolSize)
	for id := 1; id <= PoolSize; id++ {
		rented = append(rented, id)
	}
	st := Derive(rented)
	if st.AvailableCount != 0 || st.RentedCount != PoolSize {
		t.Fatalf("counts = %d/%d, want 0/%d", st.AvailableCount, st.RentedCount, PoolSize)
	}
	if st.NextAvailableID != nil {
		t.Fatalf("NextAvailableID = %d, want nil for a fully rented pool", *st.NextAvailableID)
	}
}

func TestDeriveCountInvariant(t *testing.T) {
	for _, rented := range [][]int{nil, {1}, {2, 4, 6}, {50}, {1, 1, 51}} {
		st := Derive(rented)
		if st.AvailableCount+st.RentedCount != PoolSize {
			t.Errorf("rented=%v: available+rented = %d, want %d", rented, st.AvailableCount+st.RentedCount, PoolSize)
		}
	}
}

func TestInPool(t *testing.T) {
	for id, want := range map[int]bool{0: false, 1: true, 25: true, 50: true, 51: false, -1: false} {
		if got := InPool(id); got != want {
			t.Errorf("InPool(%d) = %v, want %v", id, got, want)
		}
	}
}

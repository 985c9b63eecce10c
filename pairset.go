package tether

const (
	pairTableMinSize = 64
	pairTableMaxLoad = 0.65
)

// hashPairKey mixes a packed pair key so that keys built from sequential ids
// spread across the table (splitmix64 finalizer)
func hashPairKey(key uint64) uint64 {
	key ^= key >> 30
	key *= 0xbf58476d1ce4e5b9
	key ^= key >> 27
	key *= 0x94d049bb133111eb
	key ^= key >> 31
	return key
}

// pairSet is an open-addressing set of pair keys with linear probing. A zero
// slot is empty; valid pair keys are never zero because ids start at 1.
// Clearing keeps the allocated table so steady-state steps allocate nothing.
type pairSet struct {
	slots []uint64
	count int
}

func (s *pairSet) Len() int {
	return s.count
}

// Add inserts a key and reports whether it was not already present. Zero
// keys are rejected.
func (s *pairSet) Add(key uint64) bool {
	if key == 0 {
		return false
	}
	if s.slots == nil || float64(s.count+1) > float64(len(s.slots))*pairTableMaxLoad {
		s.grow()
	}
	mask := uint64(len(s.slots) - 1)
	i := hashPairKey(key) & mask
	for {
		switch s.slots[i] {
		case key:
			return false
		case 0:
			s.slots[i] = key
			s.count++
			return true
		}
		i = (i + 1) & mask
	}
}

func (s *pairSet) Has(key uint64) bool {
	if key == 0 || s.count == 0 {
		return false
	}
	mask := uint64(len(s.slots) - 1)
	i := hashPairKey(key) & mask
	for {
		switch s.slots[i] {
		case key:
			return true
		case 0:
			return false
		}
		i = (i + 1) & mask
	}
}

// Clear empties the set, keeping its capacity
func (s *pairSet) Clear() {
	clear(s.slots)
	s.count = 0
}

// Range calls fn for every key, in table order
func (s *pairSet) Range(fn func(key uint64)) {
	for _, key := range s.slots {
		if key != 0 {
			fn(key)
		}
	}
}

func (s *pairSet) grow() {
	size := pairTableMinSize
	if len(s.slots) > 0 {
		size = len(s.slots) * 2
	}
	old := s.slots
	s.slots = make([]uint64, size)
	s.count = 0
	for _, key := range old {
		if key != 0 {
			s.Add(key)
		}
	}
}

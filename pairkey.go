package tether

// BodyID identifies a body owned by the registry. Ids are allocated
// monotonically starting at 1; 0 is the invalid sentinel.
type BodyID uint32

// pairKey packs two body ids into one order-independent 64-bit key, so
// pairKey(a,b) == pairKey(b,a). Returns 0 if either id is invalid, which
// keeps 0 free as the empty-slot sentinel of the pair containers.
func pairKey(a, b BodyID) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// pairBodies unpacks a pair key into its two ids, lower id first
func pairBodies(key uint64) (BodyID, BodyID) {
	return BodyID(key >> 32), BodyID(key & 0xffffffff)
}

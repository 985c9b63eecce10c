package tether

import "testing"

func TestPairSet_AddHas(t *testing.T) {
	var s pairSet

	if !s.Add(42) {
		t.Error("Expected first Add to report insertion")
	}
	if s.Add(42) {
		t.Error("Expected duplicate Add to report no insertion")
	}
	if !s.Has(42) {
		t.Error("Expected Has after Add")
	}
	if s.Has(43) {
		t.Error("Unexpected Has for absent key")
	}
	if s.Len() != 1 {
		t.Errorf("Expected Len 1, got %d", s.Len())
	}
}

func TestPairSet_RejectsZero(t *testing.T) {
	var s pairSet
	if s.Add(0) {
		t.Error("Zero key must be rejected, it is the empty-slot sentinel")
	}
	if s.Has(0) {
		t.Error("Zero key must never be present")
	}
}

func TestPairSet_GrowthKeepsEntries(t *testing.T) {
	var s pairSet

	// Push well past the initial capacity and the load breach
	for i := BodyID(1); i <= 500; i++ {
		s.Add(pairKey(i, i+1))
	}
	if s.Len() != 500 {
		t.Fatalf("Expected 500 entries, got %d", s.Len())
	}
	for i := BodyID(1); i <= 500; i++ {
		if !s.Has(pairKey(i, i+1)) {
			t.Fatalf("Lost pair (%d,%d) across growth", i, i+1)
		}
	}
}

func TestPairSet_ClearKeepsCapacity(t *testing.T) {
	var s pairSet
	for i := BodyID(1); i <= 100; i++ {
		s.Add(pairKey(i, i+1))
	}
	capacity := len(s.slots)

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Expected empty set after Clear, got %d", s.Len())
	}
	if len(s.slots) != capacity {
		t.Errorf("Clear must keep capacity: had %d, got %d", capacity, len(s.slots))
	}
	if s.Has(pairKey(1, 2)) {
		t.Error("Cleared set must not report old keys")
	}
}

func TestPairSet_Range(t *testing.T) {
	var s pairSet
	want := map[uint64]bool{}
	for i := BodyID(1); i <= 30; i++ {
		key := pairKey(i, i+100)
		s.Add(key)
		want[key] = true
	}

	got := map[uint64]bool{}
	s.Range(func(key uint64) {
		got[key] = true
	})
	if len(got) != len(want) {
		t.Fatalf("Range visited %d keys, expected %d", len(got), len(want))
	}
	for key := range want {
		if !got[key] {
			t.Errorf("Range missed key %#x", key)
		}
	}
}

func TestAggregateMap_FetchCreatesOnce(t *testing.T) {
	var m aggregateMap

	agg := m.fetch(7)
	agg.samples = 3

	if m.fetch(7).samples != 3 {
		t.Error("Expected fetch to return the same aggregate")
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", m.Len())
	}
}

func TestAggregateMap_LookupAbsent(t *testing.T) {
	var m aggregateMap
	if m.lookup(7) != nil {
		t.Error("Expected nil for absent key")
	}
	m.fetch(7)
	if m.lookup(7) == nil {
		t.Error("Expected aggregate after fetch")
	}
	if m.lookup(8) != nil {
		t.Error("Expected nil for other keys")
	}
}

func TestAggregateMap_GrowthKeepsAggregates(t *testing.T) {
	var m aggregateMap
	for i := BodyID(1); i <= 200; i++ {
		m.fetch(pairKey(i, i+1)).maxImpulse = float64(i)
	}
	for i := BodyID(1); i <= 200; i++ {
		agg := m.lookup(pairKey(i, i+1))
		if agg == nil || agg.maxImpulse != float64(i) {
			t.Fatalf("Lost aggregate for pair (%d,%d) across growth", i, i+1)
		}
	}
}

func TestAggregateMap_ClearResetsSlotsForReuse(t *testing.T) {
	var m aggregateMap
	m.fetch(7).samples = 5
	m.Clear()

	if m.lookup(7) != nil {
		t.Error("Expected no entries after Clear")
	}
	// The slot is recycled: a fresh fetch must not see last step's samples
	if m.fetch(7).samples != 0 {
		t.Error("Expected a reset aggregate on reuse")
	}
}

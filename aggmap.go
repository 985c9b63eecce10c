package tether

// aggregateMap maps pair keys to their contact aggregates with the same
// open-addressing layout as pairSet: flat parallel arrays, zero key = empty
// slot, linear probing. Aggregates are stored in the slots themselves, so
// the per-step fetch/merge/clear cycle allocates nothing once the table has
// grown to its working size.
type aggregateMap struct {
	keys  []uint64
	aggs  []contactAggregate
	count int
}

func (m *aggregateMap) Len() int {
	return m.count
}

// fetch returns the aggregate for key, creating a freshly reset one on first
// use within the step. key must be non-zero.
func (m *aggregateMap) fetch(key uint64) *contactAggregate {
	if m.keys == nil || float64(m.count+1) > float64(len(m.keys))*pairTableMaxLoad {
		m.grow()
	}
	mask := uint64(len(m.keys) - 1)
	i := hashPairKey(key) & mask
	for {
		switch m.keys[i] {
		case key:
			return &m.aggs[i]
		case 0:
			m.keys[i] = key
			m.count++
			agg := &m.aggs[i]
			agg.reset()
			return agg
		}
		i = (i + 1) & mask
	}
}

// lookup returns the aggregate for key, or nil if the pair has no samples
// this step
func (m *aggregateMap) lookup(key uint64) *contactAggregate {
	if key == 0 || m.count == 0 {
		return nil
	}
	mask := uint64(len(m.keys) - 1)
	i := hashPairKey(key) & mask
	for {
		switch m.keys[i] {
		case key:
			return &m.aggs[i]
		case 0:
			return nil
		}
		i = (i + 1) & mask
	}
}

// Clear empties the map, keeping both tables for reuse. Aggregate slots are
// reset lazily when fetch claims them again.
func (m *aggregateMap) Clear() {
	clear(m.keys)
	m.count = 0
}

func (m *aggregateMap) grow() {
	size := pairTableMinSize
	if len(m.keys) > 0 {
		size = len(m.keys) * 2
	}
	oldKeys, oldAggs := m.keys, m.aggs
	m.keys = make([]uint64, size)
	m.aggs = make([]contactAggregate, size)
	m.count = 0
	mask := uint64(size - 1)
	for slot, key := range oldKeys {
		if key == 0 {
			continue
		}
		i := hashPairKey(key) & mask
		for m.keys[i] != 0 {
			i = (i + 1) & mask
		}
		m.keys[i] = key
		m.aggs[i] = oldAggs[slot]
		m.count++
	}
}

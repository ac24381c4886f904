package paramcodec

// Bitmask represents a set of stage ids.
type Bitmask uint32

func newBitmask(flags ...int) *Bitmask {
	m := new(Bitmask)
	for _, f := range flags {
		m.addFlag(f)
	}
	return m
}

func (m Bitmask) hasFlag(f int) bool { return m&(1<<f) != 0 }

func (m *Bitmask) addFlag(f int) { *m |= 1 << f }

func (m *Bitmask) removeFlag(f int) { *m &^= 1 << f }

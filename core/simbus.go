package core

// SimBus is an in-memory simulated register bank. It models the
// write-1-to-set/clear behaviour of the GPSET and GPCLR registers by
// folding writes into the GPLEV level registers, so a set followed by a
// level read round-trips the way real hardware does. Everything else is
// plain word storage.
//
// Used by the test suite and by the CLI's -sim mode.
type SimBus struct {
	words  [BusWords]uint32
	writes int
	closed bool
}

// NewSimBus returns a simulated bank with all registers zeroed.
func NewSimBus() *SimBus {
	return &SimBus{}
}

func (b *SimBus) ReadWord(offset uint32) uint32 {
	b.checkAccess(offset)
	return b.words[offset]
}

func (b *SimBus) WriteWord(offset uint32, value uint32) {
	b.checkAccess(offset)
	b.writes++

	switch offset {
	case RegSet0:
		b.words[RegLevel0] |= value
	case RegSet1:
		b.words[RegLevel1] |= value
	case RegClear0:
		b.words[RegLevel0] &^= value
	case RegClear1:
		b.words[RegLevel1] &^= value
	default:
		b.words[offset] = value
	}
}

func (b *SimBus) Close() error {
	b.closed = true
	return nil
}

// WriteCount reports how many register writes have been issued. Tests
// use it to assert that rejected commands never touch the bank.
func (b *SimBus) WriteCount() int {
	return b.writes
}

func (b *SimBus) checkAccess(offset uint32) {
	if b.closed {
		panic("register access after Close")
	}
	if offset >= BusWords {
		panic("register offset outside GPIO window: " + utoa(offset))
	}
}

package tetris

import "math/rand"

// Source picks piece kinds. *rand.Rand satisfies it; tests supply fixed
// sequences.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewSeededSource returns a math/rand source seeded with seed.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Sequence is a Source that replays fixed kinds in order, wrapping around.
type Sequence struct {
	kinds []Kind
	next  int
}

// NewSequence returns a Source yielding the given kinds cyclically.
func NewSequence(kinds ...Kind) *Sequence {
	return &Sequence{kinds: kinds}
}

// Intn returns the index of the next kind in the sequence, modulo n.
func (s *Sequence) Intn(n int) int {
	if len(s.kinds) == 0 {
		return 0
	}
	k := s.kinds[s.next%len(s.kinds)]
	s.next++
	return int(k) % n
}

func drawKind(src Source) Kind {
	return Kinds[src.Intn(len(Kinds))]
}

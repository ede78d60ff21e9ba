package tetris

import "math/rand"

// DefaultQueueSize is the number of upcoming pieces kept visible.
const DefaultQueueSize = 3

// Randomizer produces an endless 7-bag sequence of piece types and keeps a
// fixed-size lookahead queue in front of it.
type Randomizer struct {
	rng   *rand.Rand
	bag   []Type
	queue []Type
	size  int
}

// NewRandomizer creates a randomizer with a queue of queueSize pieces.
// rng must not be shared with another randomizer.
func NewRandomizer(rng *rand.Rand, queueSize int) *Randomizer {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	r := &Randomizer{rng: rng, size: queueSize}
	r.fillQueue()
	return r
}

// Restart discards the current bag and queue and refills them from the
// same random source.
func (r *Randomizer) Restart() {
	r.bag = r.bag[:0]
	r.queue = r.queue[:0]
	r.fillQueue()
}

func (r *Randomizer) fillQueue() {
	for len(r.queue) < r.size {
		r.queue = append(r.queue, r.draw())
	}
}

// draw takes the next type out of the bag, reshuffling a fresh bag when the
// current one is exhausted.
func (r *Randomizer) draw() Type {
	if len(r.bag) == 0 {
		r.bag = append(r.bag[:0], AllTypes[:]...)
		r.rng.Shuffle(len(r.bag), func(i, j int) {
			r.bag[i], r.bag[j] = r.bag[j], r.bag[i]
		})
	}
	t := r.bag[0]
	r.bag = r.bag[1:]
	return t
}

// Next pops the head of the queue as a fresh piece and pushes one new type
// so the queue length stays constant.
func (r *Randomizer) Next() Piece {
	t := r.queue[0]
	r.queue = append(r.queue[1:], r.draw())
	return NewPiece(t)
}

// Peek returns a copy of the queue, head first.
func (r *Randomizer) Peek() []Type {
	out := make([]Type, len(r.queue))
	copy(out, r.queue)
	return out
}

// QueueSize returns the fixed lookahead length.
func (r *Randomizer) QueueSize() int {
	return r.size
}

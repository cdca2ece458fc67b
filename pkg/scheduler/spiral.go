// Package scheduler hands out the tiles of an image to rendering workers.
package scheduler

import (
	"image"
	"math/bits"
	"sync"
)

// Block is one unit of work: a rectangle of the image rendered for one pass
type Block struct {
	ID     int         // Unique over the whole render, used to seed samplers
	Offset image.Point // Top left corner in image coordinates
	Size   image.Point // Clipped at the image boundary
	Pass   int
}

// Bounds returns the block rectangle in image coordinates
func (b Block) Bounds() image.Rectangle {
	return image.Rectangle{Min: b.Offset, Max: b.Offset.Add(b.Size)}
}

type direction int

const (
	right direction = iota
	down
	left
	up
)

// Spiral enumerates square tiles of a window in a spiral around its
// center, repeating the walk once per pass. NextBlock is safe for
// concurrent use.
type Spiral struct {
	size      image.Point // Window size in pixels
	offset    image.Point // Window position in the image
	blockSize int
	blocks    image.Point // Window size in blocks
	passes    int

	mu          sync.Mutex
	counter     int // Blocks issued in the current pass
	pass        int
	position    image.Point
	dir         direction
	stepsLeft   int
	steps       int
	blocksTotal int // Blocks issued over all passes
}

// RoundToPowerOfTwo rounds n up to the next power of two
func RoundToPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// NewSpiral creates a spiral over a window of the given size and offset.
// The block size is rounded up to a power of two.
func NewSpiral(size, offset image.Point, blockSize, passes int) *Spiral {
	blockSize = RoundToPowerOfTwo(blockSize)
	s := &Spiral{
		size:      size,
		offset:    offset,
		blockSize: blockSize,
		blocks: image.Pt(
			(size.X+blockSize-1)/blockSize,
			(size.Y+blockSize-1)/blockSize,
		),
		passes: max(1, passes),
	}
	s.reset()
	return s
}

// BlockCount is the number of blocks covering the window in one pass
func (s *Spiral) BlockCount() int {
	return s.blocks.X * s.blocks.Y
}

// BlockSize is the edge length of a block after rounding
func (s *Spiral) BlockSize() int {
	return s.blockSize
}

// Passes is the number of times the window is traversed
func (s *Spiral) Passes() int {
	return s.passes
}

// SetPasses changes the number of passes and restarts the walk
func (s *Spiral) SetPasses(passes int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.passes = max(1, passes)
	s.pass = 0
	s.blocksTotal = 0
	s.reset()
}

// Reset restarts the walk from the first pass
func (s *Spiral) Reset() {
	s.SetPasses(s.passes)
}

func (s *Spiral) reset() {
	s.counter = 0
	s.dir = right
	s.position = s.blocks.Div(2)
	s.stepsLeft = 1
	s.steps = 1
}

// NextBlock returns the next block of the walk. ok is false once every
// block of every pass was issued.
func (s *Spiral) NextBlock() (block Block, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// An empty window has nothing to walk in any pass
	if s.BlockCount() == 0 {
		return Block{}, false
	}
	if s.counter == s.BlockCount() {
		if s.pass+1 >= s.passes {
			return Block{}, false
		}
		s.pass++
		s.reset()
	}

	pos := s.position.Mul(s.blockSize)
	size := image.Pt(
		min(s.blockSize, s.size.X-pos.X),
		min(s.blockSize, s.size.Y-pos.Y),
	)
	block = Block{
		ID:     s.blocksTotal,
		Offset: pos.Add(s.offset),
		Size:   size,
		Pass:   s.pass,
	}

	s.counter++
	s.blocksTotal++
	if s.counter != s.BlockCount() {
		s.advance()
	}
	return block, true
}

// advance moves to the next position on the spiral that lies inside the
// window. Positions outside are skipped.
func (s *Spiral) advance() {
	for {
		switch s.dir {
		case right:
			s.position.X++
		case down:
			s.position.Y++
		case left:
			s.position.X--
		case up:
			s.position.Y--
		}

		s.stepsLeft--
		if s.stepsLeft == 0 {
			s.dir = (s.dir + 1) % 4
			if s.dir == left || s.dir == right {
				s.steps++
			}
			s.stepsLeft = s.steps
		}

		if s.position.X >= 0 && s.position.Y >= 0 && s.position.X < s.blocks.X && s.position.Y < s.blocks.Y {
			return
		}
	}
}

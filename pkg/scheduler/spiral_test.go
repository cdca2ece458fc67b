package scheduler

import (
	"image"
	"sync"
	"testing"
)

func TestRoundToPowerOfTwo(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {31, 32}, {32, 32}, {33, 64},
	}
	for _, tt := range tests {
		if got := RoundToPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("RoundToPowerOfTwo(%d) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestSpiralCoversWindowOnce(t *testing.T) {
	tests := []struct {
		name      string
		size      image.Point
		offset    image.Point
		blockSize int
		blocks    int
	}{
		{name: "exact", size: image.Pt(64, 64), blockSize: 32, blocks: 4},
		{name: "partial", size: image.Pt(100, 37), blockSize: 32, blocks: 8},
		{name: "offset", size: image.Pt(50, 20), offset: image.Pt(7, 3), blockSize: 16, blocks: 8},
		{name: "single pixel", size: image.Pt(1, 1), blockSize: 8, blocks: 1},
		{name: "tall", size: image.Pt(3, 200), blockSize: 30, blocks: 7},
		{name: "one block", size: image.Pt(10, 10), blockSize: 64, blocks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpiral(tt.size, tt.offset, tt.blockSize, 1)
			if s.BlockCount() != tt.blocks {
				t.Fatalf("block count %d, expected %d", s.BlockCount(), tt.blocks)
			}

			window := image.Rectangle{Min: tt.offset, Max: tt.offset.Add(tt.size)}
			covered := make(map[image.Point]int)
			ids := make(map[int]bool)
			for {
				b, ok := s.NextBlock()
				if !ok {
					break
				}
				if b.Size.X <= 0 || b.Size.Y <= 0 || b.Size.X > s.BlockSize() || b.Size.Y > s.BlockSize() {
					t.Fatalf("block %d has invalid size %v", b.ID, b.Size)
				}
				if !b.Bounds().In(window) {
					t.Fatalf("block %v outside window %v", b.Bounds(), window)
				}
				if ids[b.ID] {
					t.Fatalf("duplicate block id %d", b.ID)
				}
				ids[b.ID] = true
				for y := b.Offset.Y; y < b.Offset.Y+b.Size.Y; y++ {
					for x := b.Offset.X; x < b.Offset.X+b.Size.X; x++ {
						covered[image.Pt(x, y)]++
					}
				}
			}

			if len(ids) != tt.blocks {
				t.Errorf("issued %d blocks, expected %d", len(ids), tt.blocks)
			}
			if len(covered) != tt.size.X*tt.size.Y {
				t.Errorf("covered %d pixels, expected %d", len(covered), tt.size.X*tt.size.Y)
			}
			for p, n := range covered {
				if n != 1 {
					t.Fatalf("pixel %v covered %d times", p, n)
				}
			}
		})
	}
}

func TestSpiralStartsAtCenter(t *testing.T) {
	s := NewSpiral(image.Pt(160, 160), image.Point{}, 32, 1)
	b, _ := s.NextBlock()
	if b.Offset != image.Pt(64, 64) {
		t.Errorf("first block at %v, expected the center block at (64, 64)", b.Offset)
	}
	if b.ID != 0 {
		t.Errorf("first block id %d, expected 0", b.ID)
	}
}

func TestSpiralPasses(t *testing.T) {
	s := NewSpiral(image.Pt(70, 40), image.Point{}, 32, 3)
	count := s.BlockCount()

	var first []image.Point
	ids := make(map[int]bool)
	for i := 0; ; i++ {
		b, ok := s.NextBlock()
		if !ok {
			break
		}
		if b.Pass != i/count {
			t.Errorf("block %d reported pass %d, expected %d", i, b.Pass, i/count)
		}
		if i < count {
			first = append(first, b.Offset)
		} else if b.Offset != first[i%count] {
			t.Errorf("pass %d visited %v, expected %v", b.Pass, b.Offset, first[i%count])
		}
		ids[b.ID] = true
	}
	if len(ids) != 3*count {
		t.Errorf("issued %d unique ids, expected %d", len(ids), 3*count)
	}

	if _, ok := s.NextBlock(); ok {
		t.Error("exhausted spiral returned a block")
	}
	s.Reset()
	if b, ok := s.NextBlock(); !ok || b.ID != 0 {
		t.Errorf("reset spiral returned %v, %v", b, ok)
	}

	s.SetPasses(1)
	n := 0
	for _, ok := s.NextBlock(); ok; _, ok = s.NextBlock() {
		n++
	}
	if n != count {
		t.Errorf("after SetPasses(1) issued %d blocks, expected %d", n, count)
	}
}

func TestSpiralConcurrentUnique(t *testing.T) {
	s := NewSpiral(image.Pt(512, 300), image.Point{}, 16, 4)

	var mu sync.Mutex
	ids := make(map[int]bool)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				b, ok := s.NextBlock()
				if !ok {
					return
				}
				mu.Lock()
				if ids[b.ID] {
					t.Errorf("block id %d issued twice", b.ID)
				}
				ids[b.ID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if want := 4 * s.BlockCount(); len(ids) != want {
		t.Errorf("issued %d blocks, expected %d", len(ids), want)
	}
}

func TestSpiralEmptyWindow(t *testing.T) {
	tests := []struct {
		name string
		size image.Point
	}{
		{"zero size", image.Point{}},
		{"zero width", image.Pt(0, 40)},
		{"zero height", image.Pt(40, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpiral(tt.size, image.Point{}, 16, 3)
			if s.BlockCount() != 0 {
				t.Fatalf("expected no blocks, got %d", s.BlockCount())
			}
			for i := 0; i < 4; i++ {
				if b, ok := s.NextBlock(); ok {
					t.Fatalf("empty window returned block %+v", b)
				}
			}
		})
	}
}

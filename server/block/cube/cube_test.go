package cube

import "testing"

func TestPosSide(t *testing.T) {
	p := Pos{10, 64, -3}
	cases := []struct {
		face Face
		want Pos
	}{
		{FaceDown, Pos{10, 63, -3}},
		{FaceUp, Pos{10, 65, -3}},
		{FaceNorth, Pos{10, 64, -4}},
		{FaceSouth, Pos{10, 64, -2}},
		{FaceWest, Pos{9, 64, -3}},
		{FaceEast, Pos{11, 64, -3}},
	}
	for _, c := range cases {
		if got := p.Side(c.face); got != c.want {
			t.Fatalf("side %v: got %v, want %v", c.face, got, c.want)
		}
	}
}

func TestFaceOpposite(t *testing.T) {
	for _, f := range Faces() {
		if f.Opposite().Opposite() != f {
			t.Fatalf("opposite of opposite of %v is not itself", f)
		}
	}
}

func TestRotateRightCycle(t *testing.T) {
	f := FaceNorth
	for i := 0; i < 4; i++ {
		f = f.RotateRight()
	}
	if f != FaceNorth {
		t.Fatalf("four right rotations must return to north, got %v", f)
	}
}

func TestPosToChunkPos(t *testing.T) {
	cases := []struct {
		pos   Pos
		chunk ChunkPos
		ok    bool
	}{
		{Pos{0, 0, 0}, ChunkPos{0, 0}, true},
		{Pos{15, 127, 15}, ChunkPos{0, 0}, true},
		{Pos{16, 64, -1}, ChunkPos{1, -1}, true},
		{Pos{-1, 64, -16}, ChunkPos{-1, -1}, true},
		{Pos{0, 128, 0}, ChunkPos{}, false},
		{Pos{0, -1, 0}, ChunkPos{}, false},
	}
	for _, c := range cases {
		got, ok := PosToChunkPos(c.pos)
		if ok != c.ok || got != c.chunk {
			t.Fatalf("PosToChunkPos(%v) = %v, %v; want %v, %v", c.pos, got, ok, c.chunk, c.ok)
		}
	}
}

func TestFaceSet(t *testing.T) {
	var s FaceSet
	s.Insert(FaceNorth)
	s.Insert(FaceEast)
	if !s.Contains(FaceNorth) || !s.Contains(FaceEast) || s.Contains(FaceWest) {
		t.Fatalf("unexpected set contents: %b", s)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 faces, got %d", s.Len())
	}
	s.Remove(FaceNorth)
	if s.Contains(FaceNorth) || s.Len() != 1 {
		t.Fatalf("remove failed: %b", s)
	}
}

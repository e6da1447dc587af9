package painting

import "testing"

func TestByName(t *testing.T) {
	m, ok := ByName("Kebab")
	if !ok || m.Width != 1 || m.Height != 1 {
		t.Fatalf("kebab lookup failed: %+v %v", m, ok)
	}
	if _, ok := ByName("NotAMotive"); ok {
		t.Fatalf("unknown motive must miss")
	}
}

func TestMotiveSizes(t *testing.T) {
	for _, m := range Motives {
		if m.Width < 1 || m.Width > 4 || m.Height < 1 || m.Height > 4 {
			t.Fatalf("motive %s has impossible size %dx%d", m.Name, m.Width, m.Height)
		}
	}
}

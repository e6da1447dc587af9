package txguard

import (
	"sync"
	"testing"
)

func TestUnarmedGuardPermits(t *testing.T) {
	g := New()
	g.Assert()
}

func TestOwnerPermitted(t *testing.T) {
	g := New()
	g.Arm()
	g.Assert()
	g.Disarm()
}

func TestForeignGoroutinePanics(t *testing.T) {
	g := New()
	g.Arm()
	defer g.Disarm()

	var wg sync.WaitGroup
	var recovered any
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { recovered = recover() }()
		g.Assert()
	}()
	wg.Wait()
	if recovered == nil {
		t.Fatalf("assert from a foreign goroutine must panic")
	}
}

func TestDisarmReleases(t *testing.T) {
	g := New()
	g.Arm()
	g.Disarm()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.Assert()
	}()
	wg.Wait()
}

package jumper

import (
	"testing"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

func testCoin(x float64) Entity {
	return NewCoin(core.Vec2{X: x}, core.Vec2{X: 20, Y: 20})
}

func TestArenaSpawnGet(t *testing.T) {
	var a Arena
	h := a.Spawn(testCoin(5))

	if !h.Valid() {
		t.Fatal("Spawn should return a valid handle")
	}
	e, ok := a.Get(h)
	if !ok {
		t.Fatal("Get should find a freshly spawned entity")
	}
	if e.Kind != KindCoin || e.Pos.X != 5 {
		t.Errorf("Get returned %+v, expected coin at x=5", e)
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", a.Len())
	}
}

func TestArenaZeroHandle(t *testing.T) {
	var a Arena
	a.Spawn(testCoin(0))

	var h Handle
	if h.Valid() {
		t.Error("zero handle should not be valid")
	}
	if _, ok := a.Get(h); ok {
		t.Error("zero handle should not resolve")
	}
	if a.Kill(h) {
		t.Error("Kill on zero handle should report false")
	}
}

func TestArenaStaleHandle(t *testing.T) {
	var a Arena
	h1 := a.Spawn(testCoin(1))

	if !a.Kill(h1) {
		t.Fatal("first Kill should succeed")
	}
	if a.Kill(h1) {
		t.Error("second Kill should report false")
	}
	if _, ok := a.Get(h1); ok {
		t.Error("killed entity should not resolve before Sweep")
	}

	a.Sweep()
	h2 := a.Spawn(testCoin(2))

	if h2.index != h1.index {
		t.Fatalf("slot should be reused, got index %d want %d", h2.index, h1.index)
	}
	if _, ok := a.Get(h1); ok {
		t.Error("stale handle should not resolve to the reused slot")
	}
	if e, ok := a.Get(h2); !ok || e.Pos.X != 2 {
		t.Errorf("new handle should resolve to the new entity, got %+v %v", e, ok)
	}
}

func TestArenaEachSkipsKilled(t *testing.T) {
	var a Arena
	var handles []Handle
	for i := 0; i < 5; i++ {
		handles = append(handles, a.Spawn(testCoin(float64(i))))
	}

	// Kill ahead of the cursor while iterating
	var seen []float64
	a.Each(func(h Handle, e *Entity) {
		seen = append(seen, e.Pos.X)
		if h == handles[1] {
			a.Kill(handles[3])
		}
	})

	expected := []float64{0, 1, 2, 4}
	if len(seen) != len(expected) {
		t.Fatalf("Each visited %v, expected %v", seen, expected)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("Each visit %d = %v, expected %v", i, seen[i], expected[i])
		}
	}
}

func TestArenaSweep(t *testing.T) {
	var a Arena
	h0 := a.Spawn(testCoin(0))
	a.Spawn(testCoin(1))
	h2 := a.Spawn(testCoin(2))

	a.Kill(h0)
	a.Kill(h2)

	if removed := a.Sweep(); removed != 2 {
		t.Errorf("Sweep() = %d, expected 2", removed)
	}
	if a.Len() != 1 {
		t.Errorf("Len() after Sweep = %d, expected 1", a.Len())
	}
	if removed := a.Sweep(); removed != 0 {
		t.Errorf("second Sweep() = %d, expected 0", removed)
	}
}

func TestArenaCountAndReset(t *testing.T) {
	var a Arena
	a.Spawn(testCoin(0))
	a.Spawn(NewEnemy(core.Vec2{}, core.Vec2{X: 40, Y: 40}))
	h := a.Spawn(NewPlatform(core.Vec2{}, core.Vec2{X: 80, Y: 15}, PlatformState{}))

	if a.Count(KindCoin) != 1 || a.Count(KindEnemy) != 1 || a.Count(KindPlatform) != 1 {
		t.Errorf("Count mismatch: coins=%d enemies=%d platforms=%d",
			a.Count(KindCoin), a.Count(KindEnemy), a.Count(KindPlatform))
	}

	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len() after Reset = %d, expected 0", a.Len())
	}
	if _, ok := a.Get(h); ok {
		t.Error("handles should be stale after Reset")
	}
}

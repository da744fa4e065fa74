package arena

import (
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

func TestJoinLeave(t *testing.T) {
	r := NewRegistry()

	a := r.Join("alice", snake.Bounded)
	b := r.Join("bob", snake.Wrapping)
	if a == b {
		t.Fatal("Session IDs must be unique")
	}
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", r.Count())
	}

	p, ok := r.Get(b)
	if !ok || p.Username != "bob" || p.Mode != snake.Wrapping {
		t.Errorf("Get() = %+v, %v", p, ok)
	}

	r.Leave(a)
	r.Leave(a) // unknown IDs are ignored
	if r.Count() != 1 {
		t.Errorf("Count() = %d after leave, expected 1", r.Count())
	}
	if _, ok := r.Get(a); ok {
		t.Error("Left session is still registered")
	}
}

func TestListSortedByScore(t *testing.T) {
	r := NewRegistry()
	clock := time.Unix(0, 0)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	a := r.Join("alice", snake.Bounded)
	b := r.Join("bob", snake.Bounded)
	c := r.Join("carol", snake.Wrapping)

	r.Update(a, 30)
	r.Update(b, 70)
	r.Update(c, 30)

	list := r.List()
	want := []string{"bob", "alice", "carol"}
	if len(list) != len(want) {
		t.Fatalf("List() returned %d players", len(list))
	}
	for i, name := range want {
		if list[i].Username != name {
			t.Errorf("list[%d] = %s, expected %s", i, list[i].Username, name)
		}
	}
}

func TestUpdateTracksBest(t *testing.T) {
	r := NewRegistry()
	id := r.Join("alice", snake.Bounded)

	r.SetActivity(id, ActivityPlaying, snake.Bounded)
	r.Update(id, 40)
	r.SetActivity(id, ActivityPlaying, snake.Wrapping)

	p, _ := r.Get(id)
	if p.Score != 0 {
		t.Errorf("New run should reset score, got %d", p.Score)
	}
	if p.Best != 40 {
		t.Errorf("Best = %d, expected 40", p.Best)
	}
	if p.Mode != snake.Wrapping || p.Activity != ActivityPlaying {
		t.Errorf("Activity not recorded: %+v", p)
	}

	r.Update("missing", 10) // no panic
}

func TestListReturnsCopies(t *testing.T) {
	r := NewRegistry()
	id := r.Join("alice", snake.Bounded)

	list := r.List()
	list[0].Score = 999

	if p, _ := r.Get(id); p.Score != 0 {
		t.Error("List() leaked internal state")
	}
}

func TestWatchCoalesces(t *testing.T) {
	r := NewRegistry()
	ch, stop := r.Watch()
	defer stop()

	id := r.Join("alice", snake.Bounded)
	r.Update(id, 10)
	r.Update(id, 20)

	select {
	case <-ch:
	default:
		t.Fatal("Expected a change signal")
	}
	select {
	case <-ch:
		t.Error("Signals should coalesce")
	default:
	}

	stop()
	stop() // idempotent
	r.Leave(id)
	if _, ok := <-ch; ok {
		t.Error("Stopped watcher received a signal")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := r.Join("p", snake.Bounded)
			for s := 0; s < 50; s++ {
				r.Update(id, s*n)
				_ = r.List()
			}
			r.Leave(id)
		}(i)
	}
	wg.Wait()

	if r.Count() != 0 {
		t.Errorf("Count() = %d, expected 0", r.Count())
	}
}

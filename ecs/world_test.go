package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/bossrush/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if EntityCount(w) != c.create-1 {
					t.Fatalf("expected %d live entities, got %d", c.create-1, EntityCount(w))
				}
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("reused handle should carry a new generation")
	}
	if _, ok := Get(w, fresh, h.Kind()); ok {
		t.Fatalf("fresh entity must not inherit components")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	t.Run("nil_value", func(t *testing.T) {
		if err := Add[int](w, e1, h1.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
	})
	t.Run("zero_kind", func(t *testing.T) {
		var zero component.ComponentKind[int]
		if err := Add(w, e1, zero, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
			t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
		}
	})
}

func TestQueries(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "for_each_subset",
			run: func(t *testing.T) {
				w := NewWorld()
				k := component.NewComponentKind[int]()
				e1 := CreateEntity(w)
				CreateEntity(w)
				e3 := CreateEntity(w)
				_ = Add(w, e1, k, intPtr(1))
				_ = Add(w, e3, k, intPtr(3))

				sum := 0
				ForEach(w, k, func(_ Entity, v *int) { sum += *v })
				if sum != 4 {
					t.Fatalf("expected sum 4, got %d", sum)
				}
			},
		},
		{
			name: "for_each3_intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "destroy_during_iteration",
			run: func(t *testing.T) {
				w := NewWorld()
				k := component.NewComponentKind[int]()
				for i := 0; i < 4; i++ {
					_ = Add(w, CreateEntity(w), k, intPtr(i))
				}
				visited := 0
				ForEach(w, k, func(e Entity, _ *int) {
					visited++
					DestroyEntity(w, e)
				})
				if visited != 4 || Count(w, k) != 0 {
					t.Fatalf("expected 4 visits and empty store, got %d visits, %d left", visited, Count(w, k))
				}
			},
		},
		{
			name: "first_skips_missing",
			run: func(t *testing.T) {
				w := NewWorld()
				k := component.NewComponentKind[int]()
				if _, ok := First(w, k); ok {
					t.Fatalf("expected no entity")
				}
				e := CreateEntity(w)
				_ = Add(w, e, k, intPtr(9))
				got, ok := First(w, k)
				if !ok || got != e {
					t.Fatalf("expected %v, got %v ok=%v", e, got, ok)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

type countingSystem struct {
	calls int
	total float64
}

func (s *countingSystem) Update(w *World) {
	s.calls++
	s.total += w.Delta()
}

func TestWorldUpdateRunsSystems(t *testing.T) {
	w := NewWorld()
	s := &countingSystem{}
	w.AddSystem(s)
	w.AddSystem(nil)
	if n := len(w.Systems()); n != 1 {
		t.Fatalf("expected nil system skipped, got %d systems", n)
	}
	w.Update(0.5)
	w.Update(0.25)
	if s.calls != 2 || s.total != 0.75 || w.Elapsed() != 0.75 {
		t.Fatalf("unexpected system state calls=%d total=%v elapsed=%v", s.calls, s.total, w.Elapsed())
	}
}

func TestComponentKindNames(t *testing.T) {
	k := component.NewComponentKind[float64]()
	if k.String() != "float64" {
		t.Fatalf("expected float64, got %q", k.String())
	}
	var zero component.ComponentKind[int]
	if zero.String() != "invalid" {
		t.Fatalf("expected invalid for zero kind, got %q", zero.String())
	}
}

package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/travel/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
		wantAlive    int
	}{
		{"single", 1, 0, 0},
		{"three_create_destroy_middle", 3, 1, 2},
		{"none_destroy", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
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
			}
			if got := len(Entities(w)); got != c.wantAlive {
				t.Fatalf("expected %d entities, got %d", c.wantAlive, got)
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	DestroyEntity(w, old)
	fresh := CreateEntity(w)

	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must not compare equal to stale handle")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
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
	ints := component.NewComponentKind[int]()
	strs := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_and_get",
			setup: func() error { return Add(w, e1, ints, intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints)
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "pointer_is_shared",
			setup: func() error {
				v, _ := Get(w, e1, ints)
				*v = 11
				return nil
			},
			check: func(t *testing.T) {
				v, _ := Get(w, e1, ints)
				if *v != 11 {
					t.Fatalf("expected mutation through pointer, got %d", *v)
				}
			},
		},
		{
			name: "two_kinds",
			setup: func() error {
				if err := Add(w, e1, strs, stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, strs, stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, strs) || !Has(w, e2, strs) {
					t.Fatalf("expected both entities to have string component")
				}
				if Has(w, e2, ints) {
					t.Fatalf("e2 should not have int component")
				}
			},
		},
		{
			name: "remove",
			setup: func() error {
				if !Remove(w, e2, strs) {
					return errors.New("remove returned false")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e2, strs) {
					t.Fatalf("component still present after remove")
				}
				if v, ok := Get(w, e1, strs); !ok || *v != "a" {
					t.Fatalf("swap-remove corrupted e1: %v %v", v, ok)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	e := CreateEntity(w)

	if err := Add(w, e, kind, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	DestroyEntity(w, e)
	if err := Add(w, e, kind, intPtr(1)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestDestroyRemovesComponents(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	e := CreateEntity(w)
	if err := Add(w, e, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, e)
	reused := CreateEntity(w)
	if Has(w, reused, kind) {
		t.Fatalf("recycled slot inherited a component")
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e3, kind, intPtr(3)); err != nil {
		t.Fatal(err)
	}

	var ents []Entity
	ForEach(w, kind, func(e Entity, _ *int) { ents = append(ents, e) })
	set := toSet(ents)
	if _, ok := set[e1]; !ok {
		t.Fatalf("expected e1 in ForEach result")
	}
	if _, ok := set[e3]; !ok {
		t.Fatalf("expected e3 in ForEach result")
	}
	if _, ok := set[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestForEachToleratesRemoval(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	for i := 0; i < 4; i++ {
		if err := Add(w, CreateEntity(w), kind, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, kind, func(e Entity, _ *int) {
		visited++
		Remove(w, e, kind)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if len(w.Query(kind)) != 0 {
		t.Fatalf("expected every component removed")
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))
				_ = Add(w, e3, kb, intPtr(4))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e, ka, intPtr(1))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e3, ka, intPtr(3))
	_ = Add(w, e3, kb, stringPtr("c"))
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e1, kb, stringPtr("a"))
	_ = Add(w, e2, ka, intPtr(2))

	got := w.Query(ka, kb)
	if len(got) != 2 || got[0] != e1 || got[1] != e3 {
		t.Fatalf("expected [e1 e3] in slot order, got %v", got)
	}

	first, ok := w.First(ka)
	if !ok || first != e1 {
		t.Fatalf("expected First to return e1, got %v ok=%v", first, ok)
	}

	if _, ok := w.First(component.NewComponentKind[float64]()); ok {
		t.Fatalf("expected First on empty kind to report false")
	}
}

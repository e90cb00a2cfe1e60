package system

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
	"github.com/milk9111/travel/prefabs"
)

// ScriptLoader returns the source of a script by path.
type ScriptLoader func(path string) ([]byte, error)

const arrivalDispatchScript = `
on_arrived(__engine)
`

type arrivalScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	err      error
}

// ArrivalScriptSystem runs an entity's ArrivalScript each time the entity
// reaches a waypoint. Scripts queue follow-up destinations through the
// engine map passed to on_arrived.
type ArrivalScriptSystem struct {
	opts  options
	load  ScriptLoader
	rng   *rand.Rand
	cache map[ecs.Entity]*arrivalScriptRuntime
}

func NewArrivalScriptSystem(load ScriptLoader, seed int64, opts ...Option) *ArrivalScriptSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &ArrivalScriptSystem{
		opts:  buildOptions("arrival_script", opts),
		load:  load,
		rng:   rand.New(rand.NewSource(seed)),
		cache: map[ecs.Entity]*arrivalScriptRuntime{},
	}
}

// Subscribe registers the system as an arrival observer on w.
func (s *ArrivalScriptSystem) Subscribe(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	w.Events().Subscribe(ecs.EventArrived, s.OnArrived)
}

// Update drops compiled scripts of entities that no longer carry one.
func (s *ArrivalScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e := range s.cache {
		if !ecs.Has(w, e, component.ArrivalScriptComponent.Kind()) {
			delete(s.cache, e)
		}
	}
}

// Invalidate forces every entity running path to recompile it.
func (s *ArrivalScriptSystem) Invalidate(path string) {
	if s == nil {
		return
	}
	for e, rt := range s.cache {
		if rt.path == path {
			delete(s.cache, e)
		}
	}
}

func (s *ArrivalScriptSystem) OnArrived(w *ecs.World, evt ecs.Event) {
	if s == nil || w == nil {
		return
	}
	as, ok := ecs.Get(w, evt.Entity, component.ArrivalScriptComponent.Kind())
	if !ok || strings.TrimSpace(as.Path) == "" {
		return
	}

	rt := s.runtimeFor(evt.Entity, as.Path)
	if rt.err != nil {
		return
	}
	if err := rt.compiled.Set("__engine", s.buildEngine(w, evt.Entity)); err != nil {
		s.opts.logger.Error("script bind failed", "entity", evt.Entity, "path", as.Path, "err", err)
		return
	}
	if err := rt.compiled.Run(); err != nil {
		s.opts.logger.Error("script failed", "entity", evt.Entity, "path", as.Path, "err", err)
	}
}

func (s *ArrivalScriptSystem) runtimeFor(e ecs.Entity, path string) *arrivalScriptRuntime {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt
	}
	rt := &arrivalScriptRuntime{path: path}
	rt.compiled, rt.err = s.compile(path)
	if rt.err != nil {
		s.opts.logger.Error("script load failed", "entity", e, "path", path, "err", rt.err)
	}
	s.cache[e] = rt
	return rt
}

func (s *ArrivalScriptSystem) compile(path string) (*tengo.Compiled, error) {
	src, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("arrival script: load %q: %w", path, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + arrivalDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("arrival script: compile %q: %w", path, err)
	}
	return compiled, nil
}

func (s *ArrivalScriptSystem) buildEngine(w *ecs.World, e ecs.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["entity"] = &tengo.UserFunction{Name: "entity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(e.ID())}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p := mgl64.Vec3{}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			p = t.Position
		}
		return vecObject(p), nil
	}}

	values["queue_len"] = &tengo.UserFunction{Name: "queue_len", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if q := queueOf(w, e); q != nil {
			return &tengo.Int{Value: int64(q.Len())}, nil
		}
		return &tengo.Int{Value: 0}, nil
	}}

	values["push"] = &tengo.UserFunction{Name: "push", Value: func(args ...tengo.Object) (tengo.Object, error) {
		wp, err := waypointArgs(args)
		if err != nil {
			return nil, err
		}
		return boolObject(AssignTarget(w, e, wp, true)), nil
	}}

	values["replace"] = &tengo.UserFunction{Name: "replace", Value: func(args ...tengo.Object) (tengo.Object, error) {
		wp, err := waypointArgs(args)
		if err != nil {
			return nil, err
		}
		return boolObject(AssignTarget(w, e, wp, false)), nil
	}}

	values["freeze"] = &tengo.UserFunction{Name: "freeze", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(SetFrozen(w, e, true)), nil
	}}

	values["resume"] = &tengo.UserFunction{Name: "resume", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(SetFrozen(w, e, false)), nil
	}}

	values["rand"] = &tengo.UserFunction{Name: "rand", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		lo, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "min", Expected: "float", Found: args[0].TypeName()}
		}
		hi, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "max", Expected: "float", Found: args[1].TypeName()}
		}
		return &tengo.Float{Value: lo + s.rng.Float64()*(hi-lo)}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// SetFrozen freezes or resumes every frozen-capable movement on e.
func SetFrozen(w *ecs.World, e ecs.Entity, frozen bool) bool {
	found := false
	if m, ok := ecs.Get(w, e, component.KinematicMovementComponent.Kind()); ok {
		m.Frozen = frozen
		found = true
	}
	if m, ok := ecs.Get(w, e, component.CircularMovementComponent.Kind()); ok {
		m.Frozen = frozen
		found = true
	}
	return found
}

func queueOf(w *ecs.World, e ecs.Entity) *component.DestinationQueue {
	if m, ok := ecs.Get(w, e, component.KinematicMovementComponent.Kind()); ok {
		return &m.Queue
	}
	if m, ok := ecs.Get(w, e, component.PhysicsMovementComponent.Kind()); ok {
		return &m.Queue
	}
	return nil
}

func waypointArgs(args []tengo.Object) (component.Waypoint, error) {
	if len(args) != 3 && len(args) != 4 {
		return component.Waypoint{}, tengo.ErrWrongNumArguments
	}
	var v [4]float64
	names := [4]string{"x", "y", "z", "speed"}
	for i, arg := range args {
		f, ok := tengo.ToFloat64(arg)
		if !ok {
			return component.Waypoint{}, tengo.ErrInvalidArgumentType{Name: names[i], Expected: "float", Found: arg.TypeName()}
		}
		v[i] = f
	}
	wp := component.WaypointAt(mgl64.Vec3{v[0], v[1], v[2]})
	if len(args) == 4 {
		wp = wp.WithSpeed(v[3])
	}
	return wp, nil
}

func vecObject(v mgl64.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X()},
		&tengo.Float{Value: v.Y()},
		&tengo.Float{Value: v.Z()},
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

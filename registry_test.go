package scenic

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDt = 16 * time.Millisecond

func TestAddSceneRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddScene(NewScene("menu")))

	err := r.AddScene(NewScene("menu"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateScene)

	assert.Error(t, r.AddScene(nil))
}

func TestLoadUnknownSceneFails(t *testing.T) {
	r := NewRegistry()
	err := r.Load("nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownScene)

	err = r.Unload("nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestLoadActivatesOnNextTick(t *testing.T) {
	loads := 0
	s := NewScene("menu").OnLoaded(func(*Scene) { loads++ })

	r := NewRegistry()
	require.NoError(t, r.AddScene(s))
	require.NoError(t, r.Load("menu"))

	assert.False(t, s.Active(), "load is deferred until the next Tick")
	assert.Nil(t, r.Current())

	r.Tick(testDt)

	assert.True(t, s.Active())
	assert.Same(t, s, r.Current())
	assert.Equal(t, 1, loads)
}

func TestLoadTwiceBeforeTickActivatesOnce(t *testing.T) {
	loads := 0
	s := NewScene("menu").OnLoaded(func(*Scene) { loads++ })

	r := NewRegistry()
	require.NoError(t, r.AddScene(s))
	require.NoError(t, r.Load("menu"))
	require.NoError(t, r.Load("menu"))

	r.Tick(testDt)

	assert.Equal(t, 1, loads)
	assert.Len(t, r.Active(), 1)

	// Loading an already-active scene is equally a no-op.
	require.NoError(t, r.Load("menu"))
	r.Tick(testDt)
	assert.Equal(t, 1, loads)
	assert.Len(t, r.Active(), 1)
}

func TestLoadUnloadCycle(t *testing.T) {
	var log []string
	s := NewScene("arena").
		OnLoaded(func(s *Scene) {
			log = append(log, "loaded")
			e := s.Spawn("fighter")
			Add(e, &recorder{label: "fighter", log: &log})
		}).
		OnUnloaded(func(*Scene) { log = append(log, "unloaded") })

	r := NewRegistry()
	require.NoError(t, r.AddScene(s))
	require.NoError(t, r.Load("arena"))

	r.Tick(testDt)
	assert.Equal(t, []string{"loaded", "fighter:begin"}, log,
		"OnLoaded spawns commit within the same Tick")
	require.NotNil(t, s.Find("fighter"))
	require.Same(t, s, r.Current())
	assert.Equal(t, "arena", r.Current().Name())

	log = nil
	r.Tick(testDt)
	assert.Equal(t, []string{"fighter:tick"}, log)

	log = nil
	require.NoError(t, r.Unload("arena"))
	assert.True(t, s.Active(), "unload is deferred until the next Tick")

	r.Tick(testDt)
	assert.False(t, s.Active())
	assert.Empty(t, r.Active())
	assert.Nil(t, r.Current())
	assert.Equal(t, []string{"unloaded", "fighter:end"}, log,
		"unload finalizes the scene's entities")

	// Reload initializes the surviving entities again.
	log = nil
	require.NoError(t, r.Load("arena"))
	r.Tick(testDt)
	assert.True(t, s.Active())
	assert.Contains(t, log, "fighter:begin")
}

func TestUnloadInactiveSceneIsNoOp(t *testing.T) {
	s := NewScene("menu")
	r := NewRegistry()
	require.NoError(t, r.AddScene(s))

	require.NoError(t, r.Unload("menu"))
	r.Tick(testDt)
	assert.False(t, s.Active())
	assert.Empty(t, r.Active())
}

func TestAdditiveScenesTickInLoadOrder(t *testing.T) {
	var log []string
	newScene := func(name string) *Scene {
		s := NewScene(name).
			OnTick(func(s *Scene, _ time.Duration) {
				log = append(log, "scene:"+s.Name())
			}).
			OnLoaded(func(s *Scene) {
				e := s.Spawn(s.Name() + "/e")
				Add(e, &recorder{label: s.Name(), log: &log})
			})
		return s
	}

	r := NewRegistry()
	require.NoError(t, r.AddScene(newScene("world")))
	require.NoError(t, r.AddScene(newScene("hud")))
	require.NoError(t, r.Load("world"))
	require.NoError(t, r.Load("hud"))
	r.Tick(testDt)

	require.Len(t, r.Active(), 2)
	assert.Equal(t, "world", r.Current().Name())

	log = nil
	r.Tick(testDt)
	assert.Equal(t, []string{
		"scene:world", "scene:hud",
		"world:tick", "hud:tick",
	}, log, "all scene hooks run before any entity ticks")

	log = nil
	r.Render()
	assert.Equal(t, []string{"world:render", "hud:render"}, log)
}

func TestUnloadAll(t *testing.T) {
	ends := 0
	mk := func(name string) *Scene {
		return NewScene(name).
			OnLoaded(func(s *Scene) { s.Spawn("e") }).
			OnUnloaded(func(*Scene) { ends++ })
	}

	r := NewRegistry()
	require.NoError(t, r.AddScene(mk("a")))
	require.NoError(t, r.AddScene(mk("b")))
	require.NoError(t, r.Load("a"))
	require.NoError(t, r.Load("b"))
	r.Tick(testDt)
	require.Len(t, r.Active(), 2)

	r.UnloadAll()

	assert.Empty(t, r.Active())
	assert.Nil(t, r.Current())
	assert.Equal(t, 2, ends)
	assert.Equal(t, PhaseIdle, r.Phase())
}

func TestStructuralEventsReachSubscribers(t *testing.T) {
	var events []any
	r := NewRegistry()
	r.Subscribe(func(event any) { events = append(events, event) })

	s := NewScene("main")
	require.NoError(t, r.AddScene(s))
	require.NoError(t, r.Load("main"))
	r.Tick(testDt)

	e := s.Spawn("e")
	p := Add(e, &recorder{})
	r.Tick(testDt)

	Remove(e, p)
	s.Destroy(e)
	r.Tick(testDt)

	require.NoError(t, r.Unload("main"))
	r.Tick(testDt)

	var kinds []string
	for _, ev := range events {
		switch ev.(type) {
		case EventSceneLoad:
			kinds = append(kinds, "load")
		case EventSceneUnload:
			kinds = append(kinds, "unload")
		case EventEntitySpawn:
			kinds = append(kinds, "spawn")
		case EventEntityDestroy:
			kinds = append(kinds, "destroy")
		case EventAttach:
			kinds = append(kinds, "attach")
		case EventDetach:
			kinds = append(kinds, "detach")
		}
	}
	assert.Equal(t, []string{"load", "attach", "spawn", "detach", "destroy", "unload"}, kinds)
}

func TestReparentEventCarriesOldAndNewParents(t *testing.T) {
	var got *EventReparent
	r := NewRegistry()
	r.Subscribe(func(event any) {
		if ev, ok := event.(EventReparent); ok {
			got = &ev
		}
	})

	s := NewScene("main")
	require.NoError(t, r.AddScene(s))
	require.NoError(t, r.Load("main"))
	a := s.Spawn("a")
	b := s.Spawn("b")
	r.Tick(testDt)

	b.Transform().SetParent(a.Transform())
	r.Tick(testDt)

	require.NotNil(t, got)
	assert.Same(t, b.Transform(), got.Transform)
	assert.Same(t, s.Root().Transform(), got.Old)
	assert.Same(t, a.Transform(), got.New)
}

func TestPhaseTransitionsDuringFrame(t *testing.T) {
	r := NewRegistry()
	var seen []Phase
	s := NewScene("main").
		OnTick(func(s *Scene, _ time.Duration) {
			seen = append(seen, s.Registry().Phase())
		}).
		OnRender(func(s *Scene) {
			seen = append(seen, s.Registry().Phase())
		})
	require.NoError(t, r.AddScene(s))
	require.NoError(t, r.Load("main"))

	assert.Equal(t, PhaseIdle, r.Phase())
	r.Tick(testDt)
	r.Render()
	assert.Equal(t, PhaseIdle, r.Phase())
	assert.Equal(t, []Phase{PhaseTick, PhaseRender}, seen)
}

func TestBuilderInit(t *testing.T) {
	var events []any
	menu := NewScene("menu")
	arena := NewScene("arena")

	r := NewBuilder().
		Scene(menu).
		Scene(arena).
		Load("menu").
		Subscribe(func(event any) { events = append(events, event) }).
		Init()

	require.Same(t, menu, r.Scene("menu"))
	require.Same(t, arena, r.Scene("arena"))
	assert.Empty(t, r.Active(), "initial load waits for the first Tick")

	r.Tick(testDt)
	assert.True(t, menu.Active())
	assert.False(t, arena.Active())
	assert.NotEmpty(t, events)
}

func TestBuilderInitPanicsOnSetupBugs(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder().
			Scene(NewScene("dup")).
			Scene(NewScene("dup")).
			Init()
	})
	assert.Panics(t, func() {
		NewBuilder().Load("missing").Init()
	})
}

func TestErrorsAreWrappedSentinels(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddScene(NewScene("menu")))

	err := r.AddScene(NewScene("menu"))
	assert.True(t, errors.Is(err, ErrDuplicateScene))
	assert.Contains(t, err.Error(), `"menu"`)

	err = r.Load("ghost")
	assert.True(t, errors.Is(err, ErrUnknownScene))
	assert.Contains(t, err.Error(), `"ghost"`)
}

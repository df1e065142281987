// Package scenic provides a transactional scene graph for real-time engines.
//
// scenic models the object layer of a frame-stepped engine:
//   - Entities composed of a hierarchical Transform and attached Behaviors
//   - Four-hook behavior lifecycle (BeginPlay, Tick, Render, EndPlay)
//   - Deferred structural mutation: spawn, destroy, attach, detach and
//     reparent requests are buffered and committed once per frame
//   - Named scenes with independent load/unload and additive composition
//
// # Quick Start
//
// Build a registry, describe your scenes, and drive it from a loop:
//
//	registry := scenic.NewBuilder().
//	    Scene(scenic.NewScene("arena").
//	        OnLoaded(func(s *scenic.Scene) {
//	            player := s.Spawn("player")
//	            scenic.Add(player, &scenic.Camera{FOV: mgl32.DegToRad(60)})
//	            sun := s.Spawn("sun")
//	            scenic.Add(sun, &scenic.Light{Type: scenic.LightDirectional})
//	        })).
//	    Load("arena").
//	    Init()
//
//	loop := scenic.NewLoop(registry, time.Second/60)
//	loop.Start()
//	defer loop.Stop()
//
// # Behaviors
//
// Behaviors are structs embedding NopBehavior that override the hooks they
// care about:
//
//	type Spinner struct {
//	    scenic.NopBehavior
//	    Speed float32 // radians per second
//	}
//
//	func (s *Spinner) Tick(dt time.Duration) {
//	    t := s.Owner().Transform()
//	    spin := scenic.EulerToQuat(0, s.Speed*float32(dt.Seconds()), 0)
//	    t.SetLocalRotation(t.LocalRotation().Mul(spin))
//	}
//
//	scenic.Add(entity, &Spinner{Speed: 1})
//	spinner := scenic.Get[Spinner](entity)
//	scenic.Remove(entity, spinner)
//
// # The frame contract
//
// Everything runs on the single loop goroutine. Registry.Tick first commits
// pending scene loads and unloads, then ticks scene-level logic for every
// active scene, then ticks every active scene's entity tree, and finally
// drains all buffered structural mutations. Registry.Render mirrors the two
// tick passes and never mutates the graph. Mutation entry points (Spawn,
// Destroy, Add, Remove, SetParent, Load, Unload) never block and never take
// effect before the next commit.
package scenic

// Version is the scenic version.
const Version = "1.0.0"

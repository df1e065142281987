package scenic

// Builder configures a Registry before use.
// Use NewBuilder() to create a builder and chain configuration methods:
//
//	registry := scenic.NewBuilder().
//	    Scene(menu).
//	    Scene(arena).
//	    Load("menu").
//	    Init()
type Builder struct {
	scenes      []*Scene
	loads       []string
	subscribers []func(any)
}

// NewBuilder creates a new registry builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Scene adds a scene to register with the built registry.
func (b *Builder) Scene(s *Scene) *Builder {
	b.scenes = append(b.scenes, s)
	return b
}

// Load queues an initial load of the named scene; it activates on the
// registry's first Tick.
func (b *Builder) Load(name string) *Builder {
	b.loads = append(b.loads, name)
	return b
}

// Subscribe registers a structural event handler with the built registry.
func (b *Builder) Subscribe(fn func(event any)) *Builder {
	b.subscribers = append(b.subscribers, fn)
	return b
}

// Init builds the registry with the configured settings. It panics on
// duplicate scene names or initial loads of unregistered names, since both
// indicate setup bugs.
func (b *Builder) Init() *Registry {
	r := NewRegistry()

	for _, fn := range b.subscribers {
		r.Subscribe(fn)
	}
	for _, s := range b.scenes {
		if err := r.AddScene(s); err != nil {
			panic("scenic: failed to build registry: " + err.Error())
		}
	}
	for _, name := range b.loads {
		if err := r.Load(name); err != nil {
			panic("scenic: failed to build registry: " + err.Error())
		}
	}

	return r
}

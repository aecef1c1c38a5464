package scene

// Registry owns the scene namespace: every scene is created through
// it and names are unique for the life of the registry. Scenes are
// registered at startup and never removed.
type Registry struct {
	scenes map[string]*Scene
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		scenes: make(map[string]*Scene),
	}
}

// Create registers a new scene under the given name.
func (r *Registry) Create(name string) (*Scene, error) {
	if _, ok := r.scenes[name]; ok {
		return nil, &ExistsError{Name: name}
	}
	s := New(name)
	r.scenes[name] = s
	r.order = append(r.order, name)
	return s, nil
}

// Get returns the scene registered under the name.
func (r *Registry) Get(name string) (*Scene, error) {
	s, ok := r.scenes[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return s, nil
}

// Has reports whether a scene is registered under the name.
func (r *Registry) Has(name string) bool {
	_, ok := r.scenes[name]
	return ok
}

// Attach adds the named child to the named parent's child list.
func (r *Registry) Attach(parent, child string) error {
	p, err := r.Get(parent)
	if err != nil {
		return err
	}
	c, err := r.Get(child)
	if err != nil {
		return err
	}
	p.AddChild(c)
	return nil
}

// Activate activates the named scene.
func (r *Registry) Activate(name string) error {
	s, err := r.Get(name)
	if err != nil {
		return err
	}
	return s.Activate()
}

// Deactivate deactivates the named scene.
func (r *Registry) Deactivate(name string) error {
	s, err := r.Get(name)
	if err != nil {
		return err
	}
	return s.Deactivate()
}

// Names returns the registered scene names in creation order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered scenes.
func (r *Registry) Len() int {
	return len(r.scenes)
}

// Init initializes every registered scene that has no parent inside
// the registry, which covers whole trees without double-loading
// shared subtrees.
func (r *Registry) Init() {
	children := make(map[*Scene]bool)
	for _, name := range r.order {
		for _, c := range r.scenes[name].Children() {
			children[c] = true
		}
	}
	for _, name := range r.order {
		if s := r.scenes[name]; !children[s] {
			s.Init()
		}
	}
}

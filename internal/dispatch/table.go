package dispatch

import "github.com/dshills/stagehand/internal/event"

// pending is a deferred registration held until Load.
type pending struct {
	owner  string // "" for a free function
	kind   event.Kind
	fn     HandlerFunc
	method MethodFunc
	params []string
	guards []Guard
}

// binding is a resolved, callable registration.
type binding struct {
	recv   Value // nil for free bindings
	fn     HandlerFunc
	method MethodFunc
	params []string
	guards []Guard
}

// fire evaluates the binding's guards against the occurrence and, if
// they all pass, extracts the parameters and invokes the target. A
// failing guard skips the binding with Continue; a guard or parameter
// naming a missing attribute is an error result.
func (b *binding) fire(ev event.Event) Result {
	for _, g := range b.guards {
		ok, err := g.check(b.recv, ev)
		if err != nil {
			return Fail(err)
		}
		if !ok {
			return Continue()
		}
	}

	args := make([]Value, len(b.params))
	for i, name := range b.params {
		v, ok := ev.Attrs.Get(name)
		if !ok {
			return Fail(&MissingAttrError{Kind: ev.Kind, Attr: name})
		}
		args[i] = v
	}

	if b.method != nil {
		return b.method(b.recv, args...)
	}
	if b.fn == nil {
		return Failf("nil handler registered for %s", ev.Kind)
	}
	return b.fn(args...)
}

// Table collects registrations and instances, resolves them into
// bindings at load time, and dispatches occurrences through the
// bindings. Registration, tracking, and recording happen before the
// run loop starts; Load resolves them; Dispatch runs inside the loop.
// A Table is not safe for concurrent use.
type Table struct {
	pendings  []pending
	instances map[string][]Value
	bindings  map[event.Kind][]*binding
	loaded    bool
}

// NewTable creates an empty dispatch table.
func NewTable() *Table {
	return &Table{
		instances: make(map[string][]Value),
		bindings:  make(map[event.Kind][]*binding),
	}
}

// Register adds a free-function registration for the given kind.
// params names the attributes extracted as arguments, in order; nil
// means the handler takes no arguments. Guards are evaluated in the
// given order.
func (t *Table) Register(kind event.Kind, fn HandlerFunc, params []string, guards ...Guard) {
	t.pendings = append(t.pendings, pending{
		kind:   kind,
		fn:     fn,
		params: params,
		guards: guards,
	})
}

// RegisterMethod adds an instance-bound registration under the given
// owner key. The method binds once per instance recorded for the
// owner at load time.
func (t *Table) RegisterMethod(owner string, kind event.Kind, method MethodFunc, params []string, guards ...Guard) {
	t.pendings = append(t.pendings, pending{
		owner:  owner,
		kind:   kind,
		method: method,
		params: params,
		guards: guards,
	})
}

// TrackOwner marks an owner key as eligible for instance recording.
// Tracking is idempotent; re-tracking never clears recorded
// instances.
func (t *Table) TrackOwner(owner string) {
	if _, ok := t.instances[owner]; !ok {
		t.instances[owner] = nil
	}
}

// Tracked reports whether the owner key has been tracked.
func (t *Table) Tracked(owner string) bool {
	_, ok := t.instances[owner]
	return ok
}

// RecordInstance appends an instance to the owner's list. The owner
// must have been tracked first.
func (t *Table) RecordInstance(owner string, inst Value) error {
	if _, ok := t.instances[owner]; !ok {
		return &UnknownOwnerError{Owner: owner}
	}
	t.instances[owner] = append(t.instances[owner], inst)
	return nil
}

// InstanceCount returns the number of instances recorded for the
// owner.
func (t *Table) InstanceCount(owner string) int {
	return len(t.instances[owner])
}

// Load resolves every pending registration into bindings, fully
// replacing the previous bindings. Free registrations produce one
// binding each; owned registrations produce one binding per instance
// recorded so far, in recording order. An owner with no instances
// produces none. Load may be called again after recording more
// instances; the table is rebuilt, never accumulated.
func (t *Table) Load() {
	t.bindings = make(map[event.Kind][]*binding, len(t.bindings))
	for i := range t.pendings {
		p := &t.pendings[i]
		if p.owner == "" {
			t.bindings[p.kind] = append(t.bindings[p.kind], &binding{
				fn:     p.fn,
				params: p.params,
				guards: p.guards,
			})
			continue
		}
		for _, inst := range t.instances[p.owner] {
			t.bindings[p.kind] = append(t.bindings[p.kind], &binding{
				recv:   inst,
				method: p.method,
				params: p.params,
				guards: p.guards,
			})
		}
	}
	t.loaded = true
}

// Loaded reports whether Load has been called.
func (t *Table) Loaded() bool {
	return t.loaded
}

// Dispatch routes the occurrence through the bindings registered for
// its kind, in load order. The first non-Continue result aborts the
// pass and is returned; otherwise the pass continues through every
// binding and returns Continue. Dispatching a kind with no bindings
// is a no-op.
func (t *Table) Dispatch(ev event.Event) Result {
	for _, b := range t.bindings[ev.Kind] {
		if res := b.fire(ev); !res.IsContinue() {
			return res
		}
	}
	return Continue()
}

// BindingCount returns the number of resolved bindings for the kind.
func (t *Table) BindingCount(kind event.Kind) int {
	return len(t.bindings[kind])
}

// PendingCount returns the number of registrations awaiting Load.
func (t *Table) PendingCount() int {
	return len(t.pendings)
}

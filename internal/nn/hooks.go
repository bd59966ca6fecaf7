package nn

// PreHook is invoked immediately before a module executes.
// The inputs slice holds the positional inputs of the call.
type PreHook func(m Module, inputs []any)

// PostHook is invoked immediately after a module produces its output.
type PostHook func(m Module, inputs []any, output any)

// HookSet is a per-module registry of entry and exit hooks.
//
// Hooks fire in registration order. Registration returns a HookHandle
// so the caller can detach the hook later; the tracking session relies
// on this to guarantee instrumentation removal on every exit path.
//
// A HookSet is not safe for concurrent mutation; module execution and
// hook management are single-threaded by contract.
type HookSet struct {
	nextID int
	pre    []hookEntry[PreHook]
	post   []hookEntry[PostHook]
}

type hookEntry[F any] struct {
	id int
	fn F
}

// HookHandle identifies a registered hook and can remove it.
type HookHandle struct {
	set  *HookSet
	id   int
	pre  bool
	done bool
}

// RegisterPre registers an entry hook and returns its handle.
func (h *HookSet) RegisterPre(fn PreHook) *HookHandle {
	h.nextID++
	h.pre = append(h.pre, hookEntry[PreHook]{id: h.nextID, fn: fn})
	return &HookHandle{set: h, id: h.nextID, pre: true}
}

// RegisterPost registers an exit hook and returns its handle.
func (h *HookSet) RegisterPost(fn PostHook) *HookHandle {
	h.nextID++
	h.post = append(h.post, hookEntry[PostHook]{id: h.nextID, fn: fn})
	return &HookHandle{set: h, id: h.nextID, pre: false}
}

// Empty reports whether no hooks are registered.
func (h *HookSet) Empty() bool {
	return len(h.pre) == 0 && len(h.post) == 0
}

func (h *HookSet) firePre(m Module, inputs []any) {
	for _, e := range h.pre {
		e.fn(m, inputs)
	}
}

func (h *HookSet) firePost(m Module, inputs []any, output any) {
	for _, e := range h.post {
		e.fn(m, inputs, output)
	}
}

// Remove detaches the hook from its registry. Removing twice is a no-op.
func (hh *HookHandle) Remove() {
	if hh == nil || hh.done {
		return
	}
	hh.done = true
	if hh.pre {
		hh.set.pre = removeEntry(hh.set.pre, hh.id)
	} else {
		hh.set.post = removeEntry(hh.set.post, hh.id)
	}
}

func removeEntry[F any](entries []hookEntry[F], id int) []hookEntry[F] {
	for i, e := range entries {
		if e.id == id {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}

// Hookable is an embeddable base supplying the per-module HookSet.
//
// Every module embeds Hookable (by value) so each module instance owns
// exactly one hook registry.
type Hookable struct {
	hooks HookSet
}

// Hooks returns the module's hook registry.
func (h *Hookable) Hooks() *HookSet {
	return &h.hooks
}

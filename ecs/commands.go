package ecs

import "sync"

// commandBuffer holds structural changes recorded by systems while a stage
// is running.
type commandBuffer struct {
	mu   sync.Mutex
	cmds []func(*World)
}

// Defer records fn to run once the current stage completes.
func (w *World) Defer(fn func(*World)) {
	if w == nil || fn == nil {
		return
	}
	w.commands.mu.Lock()
	w.commands.cmds = append(w.commands.cmds, fn)
	w.commands.mu.Unlock()
}

// FlushCommands applies deferred commands in the order they were recorded.
func (w *World) FlushCommands() {
	if w == nil {
		return
	}
	w.commands.mu.Lock()
	cmds := w.commands.cmds
	w.commands.cmds = nil
	w.commands.mu.Unlock()

	for _, fn := range cmds {
		fn(w)
	}
}

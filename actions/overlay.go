package actions

import (
	"context"
	"sort"
	"sync"
)

// OverlayState tracks which overlays are switched on.
type OverlayState struct {
	mu      sync.Mutex
	enabled bool
	visible map[string]bool
}

func NewOverlayState() *OverlayState {
	return &OverlayState{enabled: true, visible: make(map[string]bool)}
}

// Enabled reports the master switch flipped by Quick Actions > Toggle Overlay.
func (o *OverlayState) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

// Visible lists the overlays that are toggled on, sorted by name.
func (o *OverlayState) Visible() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var names []string
	for name, on := range o.visible {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (o *OverlayState) toggle(name string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible[name] = !o.visible[name]
	return o.visible[name]
}

func (o *OverlayState) toggleAll() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = !o.enabled
	return o.enabled
}

type overlayToggle struct {
	name  string
	state *OverlayState
}

func (t overlayToggle) Name() string   { return t.name }
func (overlayToggle) Category() string { return "Overlays" }

func (t overlayToggle) Run(ctx context.Context, _ string) (Notice, error) {
	return Notice{Title: "Overlay", Message: t.name + onOff(t.state.toggle(t.name))}, nil
}

type masterOverlayToggle struct {
	state *OverlayState
}

func (masterOverlayToggle) Name() string     { return "Toggle Overlay" }
func (masterOverlayToggle) Category() string { return "Quick Actions" }

func (t masterOverlayToggle) Run(ctx context.Context, _ string) (Notice, error) {
	return Notice{Title: "Overlay", Message: "Overlay" + onOff(t.state.toggleAll())}, nil
}

func onOff(on bool) string {
	if on {
		return " shown"
	}
	return " hidden"
}

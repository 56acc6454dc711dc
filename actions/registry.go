package actions

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownAction = errors.New("unknown action")

// Registry groups actions by tab, keeping registration order for display.
type Registry struct {
	// OnRun, when set, is called with the tab of every action that runs.
	OnRun func(tab Tab)

	tabs  []Tab
	byTab map[Tab][]Action
}

func NewRegistry() *Registry {
	return &Registry{byTab: make(map[Tab][]Action)}
}

func (r *Registry) Register(tab Tab, actions ...Action) {
	if _, ok := r.byTab[tab]; !ok {
		r.tabs = append(r.tabs, tab)
	}
	r.byTab[tab] = append(r.byTab[tab], actions...)
}

func (r *Registry) Tabs() []Tab {
	return append([]Tab(nil), r.tabs...)
}

func (r *Registry) Actions(tab Tab) []Action {
	return append([]Action(nil), r.byTab[tab]...)
}

// Find looks an action up by its label (case-insensitive) or its Slug.
func (r *Registry) Find(tab Tab, name string) (Action, bool) {
	name = strings.TrimSpace(name)
	for _, action := range r.byTab[tab] {
		if strings.EqualFold(action.Name(), name) || Slug(action.Name()) == name {
			return action, true
		}
	}
	return nil, false
}

func (r *Registry) Run(ctx context.Context, tab Tab, name, input string) (Notice, error) {
	if err := ctx.Err(); err != nil {
		return Notice{}, err
	}
	action, ok := r.Find(tab, name)
	if !ok {
		return Notice{}, errors.Wrapf(ErrUnknownAction, "%s/%s", tab, name)
	}
	notice, err := action.Run(ctx, input)
	if err != nil {
		return Notice{}, errors.Wrapf(err, "%s", action.Name())
	}
	if r.OnRun != nil {
		r.OnRun(tab)
	}
	return notice, nil
}

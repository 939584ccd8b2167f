package main

import "sync"

const (
	toggleLogin  = "login"
	toggleCreate = "create"
)

// ViewState is the per-process UI state that is not part of the data:
// which togglable sections are open and which entries show details.
type ViewState struct {
	mu      sync.Mutex
	visible map[string]bool
	details map[string]bool
}

func NewViewState() *ViewState {
	return &ViewState{
		visible: make(map[string]bool),
		details: make(map[string]bool),
	}
}

func isToggle(name string) bool {
	return name == toggleLogin || name == toggleCreate
}

func (v *ViewState) Toggle(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible[name] = !v.visible[name]
}

func (v *ViewState) Hide(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.visible, name)
}

func (v *ViewState) Visible(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible[name]
}

func (v *ViewState) ToggleDetails(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.details[id] {
		delete(v.details, id)
		return
	}
	v.details[id] = true
}

func (v *ViewState) ShowsDetails(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.details[id]
}

func (v *ViewState) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	clear(v.visible)
	clear(v.details)
}

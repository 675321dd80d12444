package catalog

import "sync"

// Mode is the active UI mode.
type Mode string

const (
	ModeList    Mode = "list"
	ModeCreate  Mode = "create"
	ModeEdit    Mode = "edit"
	ModeDetails Mode = "details"
)

// ViewState tracks which mode is active and, in edit/details modes, which
// product is the subject. Exactly one mode is active at a time; transitions
// overwrite with no memory of the prior mode, and the machine itself performs
// no side effects.
type ViewState struct {
	mu      sync.RWMutex
	mode    Mode
	subject string
}

// NewViewState starts in list mode with no subject.
func NewViewState() *ViewState {
	return &ViewState{mode: ModeList}
}

func (v *ViewState) SetListView() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = ModeList
	v.subject = ""
}

func (v *ViewState) SetCreateView() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = ModeCreate
	v.subject = ""
}

func (v *ViewState) SetEditView(productID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = ModeEdit
	v.subject = productID
}

func (v *ViewState) SetDetailsView(productID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = ModeDetails
	v.subject = productID
}

// Current returns the active mode and the subject product id ("" outside
// edit/details).
func (v *ViewState) Current() (Mode, string) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mode, v.subject
}

// Package viewstate models the console's mutually exclusive views and
// the dependent-selection machine of the device form as explicit state,
// so navigation rules live in one testable place instead of scattered
// handler conditionals.
package viewstate

import "fmt"

// View is one of the three mutually exclusive sections.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewDeviceForm
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewDashboard:
		return "dashboard"
	case ViewDeviceForm:
		return "device-form"
	default:
		return "unknown"
	}
}

// FormMode distinguishes create from edit inside the device form.
type FormMode int

const (
	FormNone FormMode = iota
	FormCreate
	FormEdit
)

// Router is the view state machine for one tab.
type Router struct {
	current View
	mode    FormMode
	editID  uint
}

// NewRouter starts at the login view.
func NewRouter() *Router {
	return &Router{current: ViewLogin}
}

// Current returns the active view.
func (r *Router) Current() View { return r.current }

// FormMode returns the active form mode, FormNone outside the form.
func (r *Router) FormMode() FormMode { return r.mode }

// EditingID returns the device id being edited, 0 in create mode.
func (r *Router) EditingID() uint { return r.editID }

// SessionEstablished moves Login → Dashboard after establishSession or
// login succeeds.
func (r *Router) SessionEstablished() {
	r.current = ViewDashboard
	r.mode = FormNone
	r.editID = 0
}

// StartCreate moves Dashboard → DeviceForm(create).
func (r *Router) StartCreate() error {
	if r.current != ViewDashboard {
		return fmt.Errorf("viewstate: cannot open create form from %s", r.current)
	}
	r.current = ViewDeviceForm
	r.mode = FormCreate
	r.editID = 0
	return nil
}

// StartEdit moves Dashboard → DeviceForm(edit) for one device. The full
// record is fetched by id before the form is populated.
func (r *Router) StartEdit(deviceID uint) error {
	if r.current != ViewDashboard {
		return fmt.Errorf("viewstate: cannot open edit form from %s", r.current)
	}
	if deviceID == 0 {
		return fmt.Errorf("viewstate: edit requires a device id")
	}
	r.current = ViewDeviceForm
	r.mode = FormEdit
	r.editID = deviceID
	return nil
}

// FormDone moves DeviceForm → Dashboard on save success or cancel.
func (r *Router) FormDone() {
	if r.current == ViewDeviceForm {
		r.current = ViewDashboard
	}
	r.mode = FormNone
	r.editID = 0
}

// SessionCleared returns to the login view from anywhere.
func (r *Router) SessionCleared() {
	r.current = ViewLogin
	r.mode = FormNone
	r.editID = 0
}

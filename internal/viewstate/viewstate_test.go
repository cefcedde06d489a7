package viewstate

import "testing"

func TestRouterStartsAtLogin(t *testing.T) {
	r := NewRouter()
	if r.Current() != ViewLogin {
		t.Fatalf("new router must start at login, got %s", r.Current())
	}
}

func TestRouterLoginToDashboard(t *testing.T) {
	r := NewRouter()
	r.SessionEstablished()
	if r.Current() != ViewDashboard {
		t.Fatalf("expected dashboard after session, got %s", r.Current())
	}
}

func TestRouterFormTransitions(t *testing.T) {
	r := NewRouter()
	r.SessionEstablished()

	if err := r.StartCreate(); err != nil {
		t.Fatalf("StartCreate from dashboard: %v", err)
	}
	if r.Current() != ViewDeviceForm || r.FormMode() != FormCreate {
		t.Fatalf("expected create form, got view=%s mode=%d", r.Current(), r.FormMode())
	}

	r.FormDone()
	if r.Current() != ViewDashboard || r.FormMode() != FormNone {
		t.Fatalf("FormDone must land on dashboard, got view=%s mode=%d", r.Current(), r.FormMode())
	}

	if err := r.StartEdit(42); err != nil {
		t.Fatalf("StartEdit from dashboard: %v", err)
	}
	if r.FormMode() != FormEdit || r.EditingID() != 42 {
		t.Fatalf("expected edit of 42, got mode=%d id=%d", r.FormMode(), r.EditingID())
	}
}

func TestRouterRejectsFormFromLogin(t *testing.T) {
	r := NewRouter()
	if err := r.StartCreate(); err == nil {
		t.Fatal("create form must be unreachable from login")
	}
	if err := r.StartEdit(1); err == nil {
		t.Fatal("edit form must be unreachable from login")
	}
}

func TestRouterRejectsEditWithoutID(t *testing.T) {
	r := NewRouter()
	r.SessionEstablished()
	if err := r.StartEdit(0); err == nil {
		t.Fatal("edit requires a device id")
	}
}

func TestRouterSessionClearedFromAnywhere(t *testing.T) {
	r := NewRouter()
	r.SessionEstablished()
	if err := r.StartEdit(7); err != nil {
		t.Fatal(err)
	}

	r.SessionCleared()
	if r.Current() != ViewLogin || r.FormMode() != FormNone || r.EditingID() != 0 {
		t.Fatalf("cleared session must reset everything, got view=%s mode=%d id=%d",
			r.Current(), r.FormMode(), r.EditingID())
	}
}

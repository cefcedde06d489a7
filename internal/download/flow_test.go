package download

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"go-registry-console/internal/registry"
)

func verifyWith(resource *registry.ProtectedResource, err error) VerifyFunc {
	return func(ctx context.Context, fileID uint, password string) (*registry.ProtectedResource, error) {
		return resource, err
	}
}

func TestFlowStartOpensPrompt(t *testing.T) {
	f := NewFlow(verifyWith(nil, registry.ErrDenied))
	if err := f.Start(7); err != nil {
		t.Fatal(err)
	}
	if f.State() != StatePasswordPrompt || f.FileID() != 7 {
		t.Fatalf("expected prompt for file 7, got state=%s id=%d", f.State(), f.FileID())
	}
}

func TestFlowStartRequiresFileID(t *testing.T) {
	f := NewFlow(verifyWith(nil, nil))
	if err := f.Start(0); err == nil {
		t.Fatal("start without a file id must fail")
	}
}

func TestFlowDeniedReturnsToPromptWithFixedMessage(t *testing.T) {
	f := NewFlow(verifyWith(nil, registry.ErrDenied))
	if err := f.Start(7); err != nil {
		t.Fatal(err)
	}

	if _, err := f.Submit(context.Background(), "wrong"); !errors.Is(err, registry.ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v", err)
	}
	if f.State() != StatePasswordPrompt {
		t.Fatalf("refusal must return to the prompt, got %s", f.State())
	}
	if f.Message() != DeniedMessage {
		t.Fatalf("refusal must show the fixed denial text, got %q", f.Message())
	}
}

func TestFlowRetriesAreUnlimited(t *testing.T) {
	f := NewFlow(verifyWith(nil, registry.ErrDenied))
	if err := f.Start(7); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if _, err := f.Submit(context.Background(), "wrong"); err == nil {
			t.Fatal("expected refusal")
		}
		if f.State() != StatePasswordPrompt {
			t.Fatalf("attempt %d: flow must stay retryable, got %s", i, f.State())
		}
	}
}

func TestFlowConnectionErrorShowsGenericNotice(t *testing.T) {
	connErr := &registry.ConnectionError{Op: "GET", Err: errors.New("refused")}
	f := NewFlow(verifyWith(nil, connErr))
	if err := f.Start(7); err != nil {
		t.Fatal(err)
	}

	if _, err := f.Submit(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
	if f.Message() == DeniedMessage {
		t.Fatal("a connection failure is not a denial")
	}
	if !strings.Contains(f.Message(), "Connection error") {
		t.Fatalf("expected generic connection text, got %q", f.Message())
	}
}

func TestFlowSuccessOpensResourceOnce(t *testing.T) {
	calls := 0
	verify := func(ctx context.Context, fileID uint, password string) (*registry.ProtectedResource, error) {
		calls++
		return &registry.ProtectedResource{
			Body:        io.NopCloser(strings.NewReader("data")),
			ContentType: "application/pdf",
		}, nil
	}

	f := NewFlow(verify)
	if err := f.Start(7); err != nil {
		t.Fatal(err)
	}

	resource, err := f.Submit(context.Background(), "correct")
	if err != nil {
		t.Fatal(err)
	}
	defer resource.Body.Close()

	if f.State() != StateSuccess {
		t.Fatalf("expected success, got %s", f.State())
	}
	if calls != 1 {
		t.Fatalf("the resource must be opened exactly once, got %d calls", calls)
	}

	// A second submit without a fresh prompt is refused.
	if _, err := f.Submit(context.Background(), "correct"); err == nil {
		t.Fatal("submit after success must fail until Start is called again")
	}
	if calls != 1 {
		t.Fatalf("refused submit must not reopen the resource, got %d calls", calls)
	}
}

func TestFlowReset(t *testing.T) {
	f := NewFlow(verifyWith(nil, registry.ErrDenied))
	if err := f.Start(7); err != nil {
		t.Fatal(err)
	}
	f.Reset()
	if f.State() != StateIdle || f.FileID() != 0 || f.Message() != "" {
		t.Fatalf("reset must return to idle, got state=%s id=%d msg=%q",
			f.State(), f.FileID(), f.Message())
	}
}

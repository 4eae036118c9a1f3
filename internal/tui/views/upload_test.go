package views

import (
	"context"
	"errors"
	"testing"

	"github.com/nmoreno/obligo/internal/store"
	"github.com/nmoreno/obligo/internal/tui/msgs"
)

// withUploadFunc swaps the package-level upload function for one test.
func withUploadFunc(t *testing.T, fn UploadFunc) {
	t.Helper()
	prev := uploadDocument
	uploadDocument = fn
	t.Cleanup(func() { uploadDocument = prev })
}

func TestUpload_SuccessGoesToObligations(t *testing.T) {
	var gotPath string
	withUploadFunc(t, func(_ context.Context, _ *store.Store, path string, _ int) error {
		gotPath = path
		return nil
	})

	st := store.New(&stubGateway{})
	m := NewUploadModel(st, t.TempDir(), 10)

	cmd := m.startUpload("/tmp/contract.pdf")
	msg := cmd()

	done, ok := msg.(uploadDoneMsg)
	if !ok {
		t.Fatalf("expected uploadDoneMsg, got %T", msg)
	}
	if gotPath != "/tmp/contract.pdf" {
		t.Errorf("unexpected path: %q", gotPath)
	}

	m.state = stateUploading
	m, next := m.Update(done)
	if m.Uploading() {
		t.Error("upload state should settle")
	}
	if next == nil {
		t.Fatal("expected transition command")
	}
	if _, ok := next().(msgs.GoToObligationsMsg); !ok {
		t.Errorf("expected GoToObligationsMsg, got %T", next())
	}
}

func TestUpload_FailureReturnsToPicker(t *testing.T) {
	withUploadFunc(t, func(context.Context, *store.Store, string, int) error {
		return errors.New("boom")
	})

	st := store.New(&stubGateway{})
	m := NewUploadModel(st, t.TempDir(), 10)
	m.state = stateUploading

	msg := m.startUpload("/tmp/contract.pdf")()
	m, cmd := m.Update(msg)

	if m.Uploading() {
		t.Error("failed upload should return to the picker")
	}
	if cmd != nil {
		t.Error("failed upload must not navigate away")
	}
}

func TestUpload_OpenMissingFileFails(t *testing.T) {
	st := store.New(&stubGateway{})
	err := defaultUpload(context.Background(), st, "/nonexistent/file.pdf", 10)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/dotstitch/pkg/errors"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCheckValidDocument(t *testing.T) {
	path := writeTempFile(t, "ok.dot", "digraph { a -> b; }\n")

	if err := runCheck(context.Background(), []string{path}, false); err != nil {
		t.Errorf("runCheck() error = %v, want nil", err)
	}
}

func TestRunCheckInvalidDocument(t *testing.T) {
	path := writeTempFile(t, "bad.dot", "digraph { a -> ; }}}\n")

	err := runCheck(context.Background(), []string{path}, false)
	if err == nil {
		t.Fatal("expected error for invalid document")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidDOT {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidDOT)
	}
}

func TestRunCheckFragmentMode(t *testing.T) {
	// A graph body is not a document, so it only parses once check
	// wraps it the way merge would.
	path := writeTempFile(t, "body.dot", `"vpc" -> "subnet";`+"\n")

	if err := runCheck(context.Background(), []string{path}, false); err == nil {
		t.Error("bare body should fail as a complete document")
	}
	if err := runCheck(context.Background(), []string{path}, true); err != nil {
		t.Errorf("runCheck(fragment) error = %v, want nil", err)
	}
}

func TestRunCheckUnreadableAborts(t *testing.T) {
	err := runCheck(context.Background(), []string{filepath.Join(t.TempDir(), "missing.dot")}, false)
	if err == nil {
		t.Fatal("expected error for unreadable input")
	}
	if errors.GetCode(err) != errors.ErrCodeInputUnreadable {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInputUnreadable)
	}
}

func TestRunCheckCountsFailures(t *testing.T) {
	good := writeTempFile(t, "good.dot", "digraph { a; }\n")
	bad := writeTempFile(t, "bad.dot", "digraph {{{\n")

	err := runCheck(context.Background(), []string{good, bad}, false)
	if err == nil {
		t.Fatal("expected error when any file fails")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidDOT {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidDOT)
	}
}

func TestCheckCommandRequiresArgs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"check"})

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error when no files are given")
	}
}

func TestCheckCommandFragmentFlag(t *testing.T) {
	path := writeTempFile(t, "body.dot", "a -> b;\n")

	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"check", "--fragment", path})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Errorf("check --fragment error = %v, want nil", err)
	}
}

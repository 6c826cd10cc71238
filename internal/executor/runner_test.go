// runner_test.go tests subprocess execution: output capture, exit codes,
// launch failures, timeout enforcement with process group kill, and
// independence of concurrent runs.
package executor

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRun_CapturesStdout(t *testing.T) {
	r := New()

	result, err := r.Run(context.Background(), NewCommand("echo", "hello"), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", result.ExitCode)
	}
	if string(result.Stdout) != "hello\n" {
		t.Errorf("unexpected stdout: %q", result.Stdout)
	}
	if result.TimedOut {
		t.Error("expected TimedOut false")
	}
	if result.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestRun_NonZeroExitIsResultNotError(t *testing.T) {
	r := New()

	result, err := r.Run(context.Background(),
		NewCommand("sh", "-c", "echo oops >&2; exit 3"), 0)
	if err != nil {
		t.Fatalf("non-zero exit must not be an error, got: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("expected exit 3, got %d", result.ExitCode)
	}
	if !strings.Contains(string(result.Stderr), "oops") {
		t.Errorf("expected stderr to contain oops, got %q", result.Stderr)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	r := New()

	result, err := r.Run(context.Background(),
		NewCommand("definitely-not-a-real-binary-xyz"), 0)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if result != nil {
		t.Errorf("expected nil result on launch failure, got %+v", result)
	}
}

func TestRun_BytePassThrough(t *testing.T) {
	r := New()

	// Output containing a NUL byte must come back untouched.
	result, err := r.Run(context.Background(),
		NewCommand("sh", "-c", `printf 'a\0b'`), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !bytes.Equal(result.Stdout, []byte{'a', 0, 'b'}) {
		t.Errorf("stdout was re-encoded: %v", result.Stdout)
	}
}

func TestRun_Timeout(t *testing.T) {
	r := New()
	start := time.Now()

	result, err := r.Run(context.Background(),
		NewCommand("sh", "-c", "echo partial; sleep 30"), 300*time.Millisecond)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("timeout must not be an error, got: %v", err)
	}
	if !result.TimedOut {
		t.Fatal("expected TimedOut true")
	}
	if result.ExitCode != -1 {
		t.Errorf("expected exit -1 on timeout, got %d", result.ExitCode)
	}
	if !strings.Contains(string(result.Stdout), "partial") {
		t.Errorf("expected partial output to be retained, got %q", result.Stdout)
	}
	// Must return shortly after the deadline, not after the sleep.
	if elapsed > 3*time.Second {
		t.Errorf("Run returned after %v, expected prompt termination", elapsed)
	}
}

func TestRun_ConcurrentRunsAreIndependent(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	errs := make(chan error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := r.Run(context.Background(), NewCommand("echo", "ok"), 0)
			if err != nil {
				errs <- err
				return
			}
			if result.ExitCode != 0 || string(result.Stdout) != "ok\n" {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent run failed: %v", err)
	}
}

func TestNewCommand_CopiesArgs(t *testing.T) {
	args := []string{"get", "pods"}
	cmd := NewCommand("kubectl", args...)

	args[0] = "mutated"
	if cmd.Args[0] != "get" {
		t.Error("expected NewCommand to copy the argument slice")
	}
}

func TestCommand_String(t *testing.T) {
	cmd := NewCommand("kubectl", "get", "pods", "-n", "default")
	want := "kubectl get pods -n default"
	if got := cmd.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	bare := NewCommand("helm")
	if got := bare.String(); got != "helm" {
		t.Errorf("String() = %q, want helm", got)
	}
}

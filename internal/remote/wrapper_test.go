// wrapper_test.go tests the local/remote command transformation: the
// identity law in local mode, argument ordering in remote mode, host-key
// policy selection, and quoting of the remote-shell token.
package remote

import (
	"reflect"
	"testing"

	"github.com/kballard/go-shellquote"

	"github.com/dimtass/kubectl-mcp-server/internal/config"
	"github.com/dimtass/kubectl-mcp-server/internal/executor"
)

func TestWrap_DisabledIsIdentity(t *testing.T) {
	cmd := executor.NewCommand("kubectl", "get", "pods")

	got := Wrap(config.Remote{}, cmd)
	if !reflect.DeepEqual(got, cmd) {
		t.Errorf("expected identity transform, got %+v", got)
	}

	// Still identity even with connection parameters present but disabled.
	r := config.Remote{User: "dimtass", Host: "192.168.1.130", Port: 2222, KeyPath: "/key"}
	got = Wrap(r, cmd)
	if !reflect.DeepEqual(got, cmd) {
		t.Errorf("expected identity transform while disabled, got %+v", got)
	}
}

func TestWrap_RemoteDefaultPort(t *testing.T) {
	r := config.Remote{
		Enabled:               true,
		User:                  "dimtass",
		Host:                  "192.168.1.130",
		Port:                  22,
		AcceptUnknownHostKeys: true,
	}
	cmd := executor.NewCommand("kubectl", "get", "pods", "-n", "default")

	got := Wrap(r, cmd)
	if got.Program != "ssh" {
		t.Fatalf("expected ssh program, got %q", got.Program)
	}

	want := []string{
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		"-o", "LogLevel=ERROR",
		"dimtass@192.168.1.130",
		"kubectl get pods -n default",
	}
	if !reflect.DeepEqual(got.Args, want) {
		t.Errorf("args mismatch:\n got %q\nwant %q", got.Args, want)
	}
}

func TestWrap_NonDefaultPort(t *testing.T) {
	r := config.Remote{
		Enabled:               true,
		User:                  "dimtass",
		Host:                  "192.168.1.130",
		Port:                  2222,
		AcceptUnknownHostKeys: true,
	}

	got := Wrap(r, executor.NewCommand("kubectl", "get", "pods"))
	if got.Args[0] != "-p" || got.Args[1] != "2222" {
		t.Errorf("expected port option first, got %q", got.Args)
	}
	// Port option must precede the target.
	if got.Args[len(got.Args)-2] != "dimtass@192.168.1.130" {
		t.Errorf("expected target before remote token, got %q", got.Args)
	}
}

func TestWrap_IdentityFileOption(t *testing.T) {
	r := config.Remote{Enabled: true, Host: "node", KeyPath: "/home/op/.ssh/id_ed25519", Port: 22}

	got := Wrap(r, executor.NewCommand("kubectl", "version"))
	if got.Args[0] != "-i" || got.Args[1] != "/home/op/.ssh/id_ed25519" {
		t.Errorf("expected identity option, got %q", got.Args)
	}

	// No -i when no key is configured.
	r.KeyPath = ""
	got = Wrap(r, executor.NewCommand("kubectl", "version"))
	for _, a := range got.Args {
		if a == "-i" {
			t.Errorf("unexpected identity option without key path: %q", got.Args)
		}
	}
}

func TestWrap_BareHostWithoutUser(t *testing.T) {
	r := config.Remote{Enabled: true, Host: "k3s-master", Port: 22}

	got := Wrap(r, executor.NewCommand("kubectl", "get", "nodes"))
	target := got.Args[len(got.Args)-2]
	if target != "k3s-master" {
		t.Errorf("expected bare host target, got %q", target)
	}
}

func TestWrap_DefaultHostKeyPolicy(t *testing.T) {
	r := config.Remote{Enabled: true, Host: "node", Port: 22}

	got := Wrap(r, executor.NewCommand("kubectl", "get", "pods"))
	want := []string{
		"-o", "StrictHostKeyChecking=accept-new",
		"-o", "LogLevel=ERROR",
		"node",
		"kubectl get pods",
	}
	if !reflect.DeepEqual(got.Args, want) {
		t.Errorf("args mismatch:\n got %q\nwant %q", got.Args, want)
	}
}

func TestWrap_QuotesEmbeddedWhitespace(t *testing.T) {
	r := config.Remote{Enabled: true, User: "dimtass", Host: "node", Port: 22}
	cmd := executor.NewCommand("kubectl", "get", "pods", "-l", "app=my app")

	got := Wrap(r, cmd)
	token := got.Args[len(got.Args)-1]

	fields, err := shellquote.Split(token)
	if err != nil {
		t.Fatalf("remote token does not parse: %v", err)
	}
	want := []string{"kubectl", "get", "pods", "-l", "app=my app"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("round trip mismatch:\n got %q\nwant %q", fields, want)
	}
}

func TestWrap_QuotesShellMetacharacters(t *testing.T) {
	r := config.Remote{Enabled: true, Host: "node", Port: 22}
	cmd := executor.NewCommand("kubectl", "annotate", "pod", "web",
		"note=a;b|c$HOME", "--overwrite")

	got := Wrap(r, cmd)
	token := got.Args[len(got.Args)-1]

	fields, err := shellquote.Split(token)
	if err != nil {
		t.Fatalf("remote token does not parse: %v", err)
	}
	want := []string{"kubectl", "annotate", "pod", "web", "note=a;b|c$HOME", "--overwrite"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("round trip mismatch:\n got %q\nwant %q", fields, want)
	}
}

func TestWrap_PureAndIdempotent(t *testing.T) {
	r := config.Remote{Enabled: true, User: "dimtass", Host: "node", Port: 2222, KeyPath: "/key"}
	cmd := executor.NewCommand("helm", "list", "-n", "kube system")

	first := Wrap(r, cmd)
	second := Wrap(r, cmd)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical inputs")
	}

	// Input command must not be mutated.
	if cmd.Program != "helm" || !reflect.DeepEqual(cmd.Args, []string{"list", "-n", "kube system"}) {
		t.Errorf("input command was mutated: %+v", cmd)
	}
}

package cmd

import (
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/licethq/licet/internal/server"
)

func TestServersListEmpty(t *testing.T) {
	t.Setenv("LICET_HOME", filepath.Join(t.TempDir(), ".licet"))

	out, err := executeCommand(t, "servers")
	if err != nil {
		t.Fatalf("servers failed: %v", err)
	}
	if !strings.Contains(out, "No registered servers found.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestServersListShowsRegisteredInstances(t *testing.T) {
	t.Setenv("LICET_HOME", filepath.Join(t.TempDir(), ".licet"))

	infos := []server.Info{
		{Name: "zeta", Host: "127.0.0.1", Port: 8401, PID: 42, Version: "dev", StartedAt: time.Now().UTC()},
		{Name: "alpha", Host: "127.0.0.1", Port: 8400, PID: 41, Version: "dev"},
	}
	for _, info := range infos {
		if err := server.Save(info); err != nil {
			t.Fatalf("Save(%s) failed: %v", info.Name, err)
		}
	}

	out, err := executeCommand(t, "servers")
	if err != nil {
		t.Fatalf("servers failed: %v", err)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "PORT") {
		t.Errorf("missing table header:\n%s", out)
	}
	alphaIdx := strings.Index(out, "alpha")
	zetaIdx := strings.Index(out, "zeta")
	if alphaIdx < 0 || zetaIdx < 0 {
		t.Fatalf("registered servers missing from output:\n%s", out)
	}
	if alphaIdx > zetaIdx {
		t.Errorf("expected alpha before zeta:\n%s", out)
	}
}

func TestServersStatusUnreachable(t *testing.T) {
	t.Setenv("LICET_HOME", filepath.Join(t.TempDir(), ".licet"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	if err := server.Save(server.Info{Name: "licet", Host: "127.0.0.1", Port: port, PID: 7}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := executeCommand(t, "servers", "status")
	if err != nil {
		t.Fatalf("servers status failed: %v", err)
	}
	if !strings.Contains(out, "unreachable") {
		t.Errorf("expected unreachable state:\n%s", out)
	}
}

func TestServersStatusUnknownName(t *testing.T) {
	t.Setenv("LICET_HOME", filepath.Join(t.TempDir(), ".licet"))

	out, err := executeCommand(t, "servers", "status", "ghost")
	if err != nil {
		t.Fatalf("servers status failed: %v", err)
	}
	if !strings.Contains(out, `No metadata found for server "ghost".`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

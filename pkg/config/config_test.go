package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pathsync/pathsync/pkg/syncengine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pathsync.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoadValid verifies a well-formed configuration parses successfully.
func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
source: /tmp/src
dest: /tmp/dst
includeFile: /tmp/rules.include
includeByDefault: true
delete:
  - excluded-equiv
  - excluded-no-equiv
`)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.Source != "/tmp/src" || file.Dest != "/tmp/dst" {
		t.Errorf("unexpected source/dest: %+v", file)
	}

	behaviour, err := file.DeleteBehaviour()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !behaviour.Has(syncengine.ExcludedEquiv) || !behaviour.Has(syncengine.ExcludedNoEquiv) {
		t.Errorf("expected both configured delete reasons to be set: %v", behaviour)
	}
	if behaviour.Has(syncengine.IncludedNoEquiv) {
		t.Error("unconfigured delete reason was unexpectedly set")
	}
}

// TestLoadMissingRequiredField verifies that omitting a required field is
// rejected rather than silently defaulted.
func TestLoadMissingRequiredField(t *testing.T) {
	path := writeConfig(t, `
source: /tmp/src
dest: /tmp/dst
`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a missing includeFile field")
	}
}

// TestDeleteBehaviourUnrecognizedName verifies an unrecognized delete-policy
// name is rejected at the driver layer rather than reaching the core.
func TestDeleteBehaviourUnrecognizedName(t *testing.T) {
	file := &File{Delete: []string{"not-a-real-reason"}}
	if _, err := file.DeleteBehaviour(); err == nil {
		t.Error("expected an error for an unrecognized delete-behaviour name")
	}
}

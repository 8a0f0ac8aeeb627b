package ctbserver

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestShouldTriggerConfigReload(t *testing.T) {
	cfgPath := "/etc/ctb/ctb.yaml"

	if !shouldTriggerConfigReload(fsnotify.Event{Name: "/etc/ctb/ctb.yaml", Op: fsnotify.Write}, cfgPath) {
		t.Fatalf("write to config file should trigger")
	}
	if !shouldTriggerConfigReload(fsnotify.Event{Name: "/etc/ctb/ctb.yaml", Op: fsnotify.Create}, cfgPath) {
		t.Fatalf("atomic rename-create should trigger")
	}
	if shouldTriggerConfigReload(fsnotify.Event{Name: "/etc/ctb/other.yaml", Op: fsnotify.Write}, cfgPath) {
		t.Fatalf("other files in the directory must not trigger")
	}
	if shouldTriggerConfigReload(fsnotify.Event{Name: "", Op: fsnotify.Write}, cfgPath) {
		t.Fatalf("empty event name must not trigger")
	}
	if shouldTriggerConfigReload(fsnotify.Event{Name: "/etc/ctb/ctb.yaml"}, cfgPath) {
		t.Fatalf("zero op must not trigger")
	}
}

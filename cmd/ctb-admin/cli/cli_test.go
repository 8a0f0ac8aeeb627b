package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	sharedver "github.com/x140y40/coolq-telegram-bot/internal/version"
)

func TestVersionCmdOutput(t *testing.T) {
	t.Parallel()

	cmd := newVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute version cmd: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	want := strings.TrimSpace(fmt.Sprint(sharedver.Get()))
	if got != want {
		t.Fatalf("version output=%q want=%q", got, want)
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	for _, name := range []string{"send", "call", "chat", "version"} {
		if _, _, err := root.Find([]string{name}); err != nil {
			t.Fatalf("find %s subcommand: %v", name, err)
		}
	}
}

func TestSendActionParams_TargetPrecedence(t *testing.T) {
	t.Parallel()

	action, params, err := sendActionParams(sendOptions{groupID: 7, userID: 9}, "hi")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if action != "send_group_msg" {
		t.Fatalf("action=%q", action)
	}
	if params["group_id"] != int64(7) {
		t.Fatalf("group_id=%v", params["group_id"])
	}
	if _, ok := params["user_id"]; ok {
		t.Fatalf("user_id must not be set when group target wins")
	}

	action, _, err = sendActionParams(sendOptions{discussID: 3}, "hi")
	if err != nil || action != "send_discuss_msg" {
		t.Fatalf("action=%q err=%v", action, err)
	}

	action, _, err = sendActionParams(sendOptions{userID: 9}, "hi")
	if err != nil || action != "send_private_msg" {
		t.Fatalf("action=%q err=%v", action, err)
	}

	if _, _, err := sendActionParams(sendOptions{}, "hi"); err == nil {
		t.Fatalf("expected error without target")
	}
}

func TestSendActionParams_AutoEscape(t *testing.T) {
	t.Parallel()

	_, params, err := sendActionParams(sendOptions{userID: 1, autoEscape: true}, "[CQ:face,id=1]")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if params["auto_escape"] != true {
		t.Fatalf("auto_escape=%v", params["auto_escape"])
	}
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	params, err := parseParams([]string{"group_id=123", "enable=true", "reason=spam posts"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if params["group_id"] != int64(123) {
		t.Fatalf("group_id=%v (%T)", params["group_id"], params["group_id"])
	}
	if params["enable"] != true {
		t.Fatalf("enable=%v", params["enable"])
	}
	if params["reason"] != "spam posts" {
		t.Fatalf("reason=%v", params["reason"])
	}

	if _, err := parseParams([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for pair without =")
	}
	if _, err := parseParams([]string{"=x"}); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

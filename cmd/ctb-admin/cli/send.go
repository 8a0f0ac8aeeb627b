package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type sendOptions struct {
	cfgPath   string
	root      string
	token     string
	timeoutMs int

	groupID    int64
	discussID  int64
	userID     int64
	autoEscape bool
}

func newSendCmd() *cobra.Command {
	opts := sendOptions{cfgPath: "ctb.yaml"}
	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a message through the gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, opts, args[0])
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.cfgPath, "config", "ctb.yaml", "config yaml path")
	fs.StringVar(&opts.root, "api-root", "", "gateway api root url (override config)")
	fs.StringVar(&opts.token, "access-token", "", "gateway access token (override config)")
	fs.IntVar(&opts.timeoutMs, "timeout-ms", 0, "request timeout in milliseconds")
	fs.Int64VarP(&opts.groupID, "group", "g", 0, "target group id")
	fs.Int64VarP(&opts.discussID, "discuss", "d", 0, "target discuss id")
	fs.Int64VarP(&opts.userID, "user", "u", 0, "target user id")
	fs.BoolVar(&opts.autoEscape, "auto-escape", false, "send message as plain text, ignoring CQ codes")
	return cmd
}

func runSend(cmd *cobra.Command, opts sendOptions, message string) error {
	action, params, err := sendActionParams(opts, message)
	if err != nil {
		return err
	}

	client, err := newClientFromFlags(opts.cfgPath, opts.root, opts.token, opts.timeoutMs)
	if err != nil {
		return err
	}
	if !client.Configured() {
		return errors.New("missing gateway api root: set api.root in config or pass --api-root")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	data, err := client.Call(ctx, action, params)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return printJSON(cmd, data)
}

// sendActionParams mirrors the server-side reply precedence: group wins
// over discuss, discuss wins over private.
func sendActionParams(opts sendOptions, message string) (string, map[string]any, error) {
	params := map[string]any{"message": message}
	if opts.autoEscape {
		params["auto_escape"] = true
	}
	switch {
	case opts.groupID > 0:
		params["group_id"] = opts.groupID
		return "send_group_msg", params, nil
	case opts.discussID > 0:
		params["discuss_id"] = opts.discussID
		return "send_discuss_msg", params, nil
	case opts.userID > 0:
		params["user_id"] = opts.userID
		return "send_private_msg", params, nil
	default:
		return "", nil, errors.New("missing target: pass one of --group, --discuss or --user")
	}
}

func printJSON(cmd *cobra.Command, data any) error {
	if data == nil {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(b)))
	return err
}

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/x140y40/coolq-telegram-bot/cmd/ctb-admin/tui"
)

type chatOptions struct {
	cfgPath   string
	root      string
	token     string
	timeoutMs int

	groupID   int64
	discussID int64
	userID    int64
}

func newChatCmd() *cobra.Command {
	opts := chatOptions{cfgPath: "ctb.yaml"}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat console against the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(opts)
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
	return cmd
}

func runChat(opts chatOptions) error {
	client, err := newClientFromFlags(opts.cfgPath, opts.root, opts.token, opts.timeoutMs)
	if err != nil {
		return err
	}
	if !client.Configured() {
		return errors.New("missing gateway api root: set api.root in config or pass --api-root")
	}

	target := tui.Target{
		GroupID:   opts.groupID,
		DiscussID: opts.discussID,
		UserID:    opts.userID,
	}
	if target.Action() == "" {
		return errors.New("missing target: pass one of --group, --discuss or --user")
	}
	return tui.RunChat(client, target)
}

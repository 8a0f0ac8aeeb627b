package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type callOptions struct {
	cfgPath   string
	root      string
	token     string
	timeoutMs int

	params []string
}

func newCallCmd() *cobra.Command {
	opts := callOptions{cfgPath: "ctb.yaml"}
	cmd := &cobra.Command{
		Use:   "call <action>",
		Short: "Invoke an arbitrary gateway action",
		Long: `Invoke an arbitrary gateway action by name and print the decoded
data payload. Nested endpoints use dots, e.g. "group.member.kick".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, opts, args[0])
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.cfgPath, "config", "ctb.yaml", "config yaml path")
	fs.StringVar(&opts.root, "api-root", "", "gateway api root url (override config)")
	fs.StringVar(&opts.token, "access-token", "", "gateway access token (override config)")
	fs.IntVar(&opts.timeoutMs, "timeout-ms", 0, "request timeout in milliseconds")
	fs.StringArrayVarP(&opts.params, "param", "P", nil, "request parameter key=value, repeatable")
	return cmd
}

func runCall(cmd *cobra.Command, opts callOptions, action string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return errors.New("missing action name")
	}
	params, err := parseParams(opts.params)
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

// parseParams turns key=value pairs into request parameters. Integer and
// boolean literals keep their JSON types so ids stay numbers on the wire.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q (expect key=value)", pair)
		}
		out[k] = coerceParam(v)
	}
	return out, nil
}

func coerceParam(v string) any {
	s := strings.TrimSpace(v)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}

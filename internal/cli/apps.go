package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/structuresh/structure/internal/adapters/tuisvc"
	"github.com/structuresh/structure/internal/api"
	"github.com/structuresh/structure/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// listPadding separates the columns of the apps table.
const listPadding = 8

// removeConcurrency bounds simultaneous remove requests.
const removeConcurrency = 4

// statusCommand builds a lifecycle command that requests status for an app.
func (c *CLI) statusCommand(name, short, status, progress string, aliases ...string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     name + " [app]",
		Short:   short,
		Aliases: aliases,
		Args:    cobra.MaximumNArgs(1),
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			app := appArg(cmd, args)
			if app == "" {
				return c.missingApp(name)
			}

			fmt.Fprintln(c.Out, progress)
			if err := c.api().SetStatus(cmd.Context(), app, status); err != nil {
				return c.warn(api.MessageOf(err, "Unable to update the application's status."))
			}
			fmt.Fprintf(c.Out, "Run `%s` to check the status of your application.\n\n", c.green("structure list"))
			return nil
		}),
	}
	addAppFlag(cmd)
	return cmd
}

func (c *CLI) removeCommand() *cobra.Command {
	var named []string
	cmd := &cobra.Command{
		Use:   "remove [app...]",
		Short: "Remove existing apps",
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			apps := append(append([]string{}, args...), named...)
			if len(apps) == 0 {
				return c.warn(fmt.Sprintf("No application(s) specified; please provide at least one.\nUsage: structure remove %s ...", c.green("APP_NAME")))
			}
			return c.removeApps(cmd.Context(), apps)
		}),
	}
	cmd.Flags().StringSliceVar(&named, "apps", nil, "applications to remove")
	return cmd
}

// removeApps removes apps concurrently and reports each result in order.
func (c *CLI) removeApps(ctx context.Context, apps []string) error {
	client := c.api()
	results := make([]error, len(apps))

	var g errgroup.Group
	g.SetLimit(removeConcurrency)
	for i, app := range apps {
		g.Go(func() error {
			results[i] = client.RemoveApp(ctx, app)
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for i, app := range apps {
		if err := results[i]; err != nil {
			c.logger().Debug("Remove failed", zap.String("app", app), zap.Error(err))
			c.printWarning(fmt.Sprintf("Unable to remove %s.", app))
			failed = true
			continue
		}
		fmt.Fprintln(c.Out, c.green(fmt.Sprintf("\n  Successfully removed %s.\n", app)))
	}
	if failed {
		return errReported
	}
	return nil
}

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all apps",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			resp, err := c.api().Apps(cmd.Context())
			if err != nil {
				return c.warn(api.MessageOf(err, "Unable to retrieve applications."))
			}
			if len(resp.Apps) == 0 {
				fmt.Fprintf(c.Out, "You don't have any apps yet; run `%s` in a project folder to get started.\n", c.green("structure deploy"))
				return nil
			}
			c.printAppsTable(resp)
			return nil
		}),
	}
}

func (c *CLI) printAppsTable(resp *api.AppsResponse) {
	names := make([]string, 0, len(resp.Apps))
	width := 0
	for name := range resp.Apps {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	pad := spaces(width - len("Name") + listPadding)
	gap := spaces(listPadding)

	fmt.Fprintln(c.Out)
	fmt.Fprintf(c.Out, "Name%sStatus%surl\n", pad, gap)
	fmt.Fprintf(c.Out, "----%s------%s---\n", pad, gap)
	for _, name := range names {
		status := titleCase(resp.Apps[name])
		if resp.Apps[name] == "running" {
			status = c.green(status)
		} else {
			status = c.yellow(status)
		}
		fmt.Fprintf(c.Out, "%s%s%s%s%s\n",
			name,
			spaces(width-len(name)+listPadding),
			status,
			spaces(listPadding-1),
			tuisvc.AppURL(name, resp.Username))
	}
	fmt.Fprintln(c.Out)
}

func spaces(n int) string {
	return strings.Repeat(" ", max(n, 0))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func (c *CLI) sshCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssh [app]",
		Short: "Open a shell in a running app",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			app := appArg(cmd, args)
			if app == "" {
				return c.missingApp("ssh")
			}

			info, err := c.api().SSHInfo(cmd.Context(), app)
			if err != nil {
				return c.warn(api.MessageOf(err, "Request failed."))
			}
			if err := c.shell().Run("ssh", "app@"+info.IP, "-p", info.PortString()); err != nil {
				return fmt.Errorf("ssh session: %w", err)
			}
			return nil
		}),
	}
	addAppFlag(cmd)
	return cmd
}

func (c *CLI) sshAddCommand() *cobra.Command {
	var keyPath string
	cmd := &cobra.Command{
		Use:   "ssh-add [app]",
		Short: "Authorize your public key for SSH access to an app",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			app := appArg(cmd, args)
			if app == "" {
				return c.missingApp("ssh-add", "--app APP_NAME --path /optional/path/to/public/key")
			}

			path := config.ExpandPath(keyPath)
			if path == "" {
				path = filepath.Join(c.home(), ".ssh", "id_rsa.pub")
			}
			key, err := c.fs().ReadFile(path)
			if err != nil {
				return c.warn(fmt.Sprintf("No public key found in `%s`. Run `ssh-keygen` to add one.", path))
			}

			if _, err := c.api().AddSSHKey(cmd.Context(), app, string(key)); err != nil {
				return c.warn(api.MessageOf(err, "Request failed."))
			}
			fmt.Fprintf(c.Out, "Successfully added your public key. Try running `%s` to SSH into your app.\n", c.green("ssh app@structure.sh"))
			return nil
		}),
	}
	addAppFlag(cmd)
	cmd.Flags().StringVar(&keyPath, "path", "", "public key to upload (default ~/.ssh/id_rsa.pub)")
	return cmd
}

func (c *CLI) uiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive apps dashboard",
		Args:  cobra.NoArgs,
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			return c.ui()(tuisvc.New(cmd.Context(), c.api()))
		}),
	}
}

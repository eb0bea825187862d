package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/structuresh/structure/internal/api"
	"github.com/structuresh/structure/internal/bundle"
	"github.com/structuresh/structure/internal/deploy"
	"go.uber.org/zap"
)

const arrow = "  ▶  "

func (c *CLI) deployCommand() *cobra.Command {
	var (
		appType string
		quiet   bool
	)
	cmd := &cobra.Command{
		Use:   "deploy [app]",
		Short: "Deploy the current folder to Structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			outcome, err := c.deploy(cmd.Context(), appArg(cmd, args), appType)
			if err != nil {
				return err
			}
			if quiet {
				return nil
			}
			return c.streamLogs(cmd.Context(), outcome.Target.App, true)
		}),
	}
	addAppFlag(cmd)
	cmd.Flags().StringVar(&appType, "type", "", "application type: flask, express, docker or static")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "don't stream deployment logs")
	return cmd
}

func (c *CLI) deploy(ctx context.Context, app, appType string) (*deploy.Outcome, error) {
	dir, err := c.dir()
	if err != nil {
		return nil, fmt.Errorf("resolving project folder: %w", err)
	}

	packager := bundle.NewPackager(c.fs(), c.archiver(), c.packaging(), c.logger(), c.printWarning)
	deployer := deploy.New(c.fs(), packager, c.api(), c.home(), c.logger(), deploy.Hooks{
		Resolved: func(t deploy.Target) {
			fmt.Fprintf(c.Out, "\n%sDeploying %s...\n", arrow, c.green(t.App))
			if t.TypeSource == deploy.TypeDetected {
				fmt.Fprintf(c.Out, "%sDetected application type: %s\n", arrow, t.Type.DisplayName())
			} else {
				fmt.Fprintf(c.Out, "%sApplication type: %s\n", arrow, c.green(string(t.Type)))
			}
		},
		Packaged: func(r *bundle.Result) {
			if r.Warning != "" {
				c.printWarning(r.Warning)
			}
			c.logger().Debug("Uploading archive",
				zap.Int("files", r.FileCount),
				zap.String("size", bundle.FormatSize(r.Size.Bytes)))
		},
	})

	outcome, err := deployer.Deploy(ctx, dir, app, appType)
	if err != nil {
		return nil, c.deployError(err)
	}

	fmt.Fprintf(c.Out, "%s%s\n\n", arrow, c.bold("Deploy complete!"))
	fmt.Fprintf(c.Out, "%sRun `%s` to check the status of your deployment.\n", arrow, c.green("structure list"))
	if url := outcome.Response.URL; url != "" {
		fmt.Fprintf(c.Out, "%sYour application will be running at %s\n\n", arrow, c.cyan("https://"+url))
	}
	return outcome, nil
}

// deployError prints the user-facing explanation of a failed deploy.
func (c *CLI) deployError(err error) error {
	var sizeErr *bundle.SizeLimitError
	switch {
	case errors.Is(err, deploy.ErrNoAppName):
		c.printWarning("Please provide either an app name to deploy to, or create a structure.yaml file.")
		fmt.Fprintf(c.Err, "         Example usage: `%s`\n\n", c.green("structure deploy hello-world"))
		return errReported
	case errors.Is(err, deploy.ErrNoNameInConfig):
		c.printWarning("No application name specified in your structure.yaml file.")
		fmt.Fprintf(c.Err, "         Example format: `name: hello-world`\n\n")
		return errReported
	case errors.Is(err, deploy.ErrInvalidName):
		return c.warn("Application names can only include letters, numbers, and dashes.")
	case errors.Is(err, deploy.ErrUnknownType):
		return c.warn(fmt.Sprintf("Please specify an application type either with the %s argument, or via a structure.yaml file.", c.green("--type")))
	case errors.Is(err, deploy.ErrRestrictedDir):
		return c.fail("You're trying to deploy a protected folder; please choose a different folder.")
	case errors.As(err, &sizeErr):
		return c.fail(sizeErr.Error())
	default:
		c.logger().Debug("Deploy failed", zap.Error(err))
		return c.fail(api.MessageOf(err, "Failed to deploy application."))
	}
}

func (c *CLI) pullCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull [app]",
		Short: "Download an app's deployed source into the current folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			app := appArg(cmd, args)
			if app == "" {
				return c.missingApp("pull")
			}
			if !deploy.ValidName(app) {
				return c.warn("Application names can only include letters, numbers, and dashes.")
			}
			dir, err := c.dir()
			if err != nil {
				return fmt.Errorf("resolving project folder: %w", err)
			}

			data, err := c.api().Pull(cmd.Context(), app)
			if err != nil {
				c.logger().Debug("Pull failed", zap.String("app", app), zap.Error(err))
				return c.warn(api.MessageOf(err, "Unable to retrieve project files."))
			}

			zipPath := filepath.Join(os.TempDir(), "structure-pull-"+app+".zip")
			if err := c.fs().WriteFile(zipPath, data, 0600); err != nil {
				return fmt.Errorf("saving download: %w", err)
			}
			defer func() {
				if err := c.fs().Remove(zipPath); err != nil && !errors.Is(err, os.ErrNotExist) {
					c.logger().Warn("Could not remove download", zap.String("path", zipPath), zap.Error(err))
				}
			}()

			if err := c.archiver().Extract(zipPath, dir); err != nil {
				c.logger().Debug("Extract failed", zap.String("path", zipPath), zap.Error(err))
				return c.warn("Unable to retrieve project files.")
			}
			fmt.Fprintf(c.Out, "Pulled %s into %s\n", c.green(app), dir)
			return nil
		}),
	}
	addAppFlag(cmd)
	return cmd
}

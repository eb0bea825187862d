package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/structuresh/structure/internal/api"
)

func (c *CLI) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to your Structure account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.prompter()
			email, err := p.Prompt(c.green("Enter your Structure email address: "))
			if err != nil {
				return fmt.Errorf("reading email: %w", err)
			}
			password, err := p.Password("Password: ")
			if err != nil {
				return err
			}

			if err := c.authSvc().Login(cmd.Context(), c.api(), email, password); err != nil {
				return c.warn("Login failed: " + api.MessageOf(err, err.Error()))
			}

			fmt.Fprintln(c.Out, c.green("\nWelcome to the Structure CLI!"))
			fmt.Fprintf(c.Out, "See the available commands by running %s\n\n", c.green("`structure help`"))
			return nil
		},
	}
}

func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of your Structure account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.authSvc().Logout(); err != nil {
				return fmt.Errorf("removing token: %w", err)
			}
			fmt.Fprintln(c.Out, c.yellow("Logged out."))
			return nil
		},
	}
}

func (c *CLI) tokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "See your API token",
		Args:  cobra.NoArgs,
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			token, err := c.authSvc().Token()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, token)
			return nil
		}),
	}
}

func (c *CLI) versionCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "See the Structure CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.Out, "Structure CLI version: %s\n", c.Version)
			if verbose {
				fmt.Fprintf(c.Out, "Go version: %s\n", runtime.Version())
				fmt.Fprintf(c.Out, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "also print the Go version and platform")
	return cmd
}

func (c *CLI) createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create an empty application",
		Args:  cobra.NoArgs,
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			p := c.prompter()
			name, err := p.Prompt("Name your application: ")
			if err != nil {
				return fmt.Errorf("reading name: %w", err)
			}
			stack, err := p.Prompt("Select a stack (flask, express, or static): ")
			if err != nil {
				return fmt.Errorf("reading stack: %w", err)
			}
			name, stack = strings.TrimSpace(name), strings.TrimSpace(stack)
			if name == "" || stack == "" {
				return c.warn("Please provide an application name and type.")
			}

			msg, err := c.api().CreateApp(cmd.Context(), name, stack)
			if err != nil {
				return c.warn(api.MessageOf(err, "Unable to create application."))
			}
			if msg == "" {
				msg = c.green("Successfully created application.")
			}
			fmt.Fprintln(c.Out, msg)
			return nil
		}),
	}
}

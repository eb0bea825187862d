// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/structuresh/structure/internal/adapters/execshell"
	"github.com/structuresh/structure/internal/adapters/keyringstore"
	"github.com/structuresh/structure/internal/adapters/osfs"
	"github.com/structuresh/structure/internal/adapters/tuisvc"
	"github.com/structuresh/structure/internal/adapters/ziparchiver"
	"github.com/structuresh/structure/internal/api"
	"github.com/structuresh/structure/internal/auth"
	"github.com/structuresh/structure/internal/config"
	"github.com/structuresh/structure/internal/deploy"
	"github.com/structuresh/structure/internal/logging"
	"github.com/structuresh/structure/internal/ports"
	"github.com/structuresh/structure/internal/tui"
	"github.com/structuresh/structure/internal/update"
	"go.uber.org/zap"
)

// APIClient is the platform API as used by the commands.
type APIClient interface {
	auth.Authenticator
	deploy.Uploader
	tuisvc.Client
	update.VersionSource
	CreateApp(ctx context.Context, name, language string) (string, error)
	Logs(ctx context.Context, app string, since float64) (*api.LogsResponse, error)
	SSHInfo(ctx context.Context, app string) (*api.SSHInfo, error)
	AddSSHKey(ctx context.Context, app, publicKey string) (string, error)
	Pull(ctx context.Context, app string) ([]byte, error)
}

// AuthService provides token operations for the CLI.
type AuthService interface {
	Token() (string, error)
	Login(ctx context.Context, a auth.Authenticator, email, password string) error
	Logout() error
}

// UpdateChecker reports when a newer CLI release exists.
type UpdateChecker interface {
	Check(ctx context.Context, current string) string
}

const (
	// DefaultPollInterval is the pause between log polls while streaming.
	DefaultPollInterval = time.Second
	// DefaultStreamDuration caps how long logs are streamed.
	DefaultStreamDuration = 2 * time.Minute
)

// errReported marks an error whose message was already printed.
var errReported = errors.New("reported")

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Dir is the project directory; empty means the working directory.
	Dir string
	// Home is the user's home directory; empty means os.UserHomeDir.
	Home string

	Config    *config.Config
	Packaging *config.Packaging
	Logger    *zap.Logger

	// Injectable dependencies (nil means use defaults)
	API      APIClient
	Auth     AuthService
	FS       ports.FileSystem
	Archiver ports.Archiver
	Shell    ports.Shell
	Prompter auth.Prompter
	Updater  UpdateChecker
	UI       func(svc ports.TUIService) error

	// Log streaming pace; zero values use the defaults.
	PollInterval   time.Duration
	StreamDuration time.Duration

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
	bold   func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan, color.Underline).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
		bold:    color.New(color.Bold).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	exitCode := 0
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) { exitCode = code; _ = exitCode },
		Updater: noUpdates{},
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		gray:    noColor,
		red:     noColor,
		bold:    noColor,
	}
}

type noUpdates struct{}

func (noUpdates) Check(context.Context, string) string { return "" }

// Helper methods to get the dependency or default

func (c *CLI) config() *config.Config {
	if c.Config == nil {
		c.Config = config.DefaultConfig()
	}
	return c.Config
}

func (c *CLI) packaging() config.Packaging {
	if c.Packaging != nil {
		return *c.Packaging
	}
	return config.DefaultPackaging()
}

func (c *CLI) logger() *zap.Logger {
	return logging.OrNop(c.Logger)
}

func (c *CLI) authSvc() AuthService {
	if c.Auth == nil {
		c.Auth = auth.NewManager(keyringstore.New(), c.logger())
	}
	return c.Auth
}

func (c *CLI) api() APIClient {
	if c.API == nil {
		cfg := c.config()
		c.API = api.New(cfg.APIURL,
			api.WithTimeout(cfg.Timeout()),
			api.WithTokenSource(c.authSvc().Token),
			api.WithLogger(c.logger()))
	}
	return c.API
}

func (c *CLI) fs() ports.FileSystem {
	if c.FS == nil {
		c.FS = osfs.New()
	}
	return c.FS
}

func (c *CLI) archiver() ports.Archiver {
	if c.Archiver == nil {
		c.Archiver = ziparchiver.New()
	}
	return c.Archiver
}

func (c *CLI) shell() ports.Shell {
	if c.Shell == nil {
		c.Shell = execshell.New()
	}
	return c.Shell
}

func (c *CLI) prompter() auth.Prompter {
	if c.Prompter == nil {
		c.Prompter = auth.NewTerminalPrompter(os.Stdin, c.Out)
	}
	return c.Prompter
}

func (c *CLI) updater() UpdateChecker {
	if c.Updater == nil {
		c.Updater = update.NewChecker(c.fs(), update.DefaultStatePath(), c.config().UpdateInterval(), c.api(), c.logger())
	}
	return c.Updater
}

func (c *CLI) ui() func(ports.TUIService) error {
	if c.UI == nil {
		return tui.Run
	}
	return c.UI
}

func (c *CLI) dir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	return os.Getwd()
}

func (c *CLI) home() string {
	if c.Home != "" {
		return c.Home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func (c *CLI) pollInterval() time.Duration {
	if c.PollInterval > 0 {
		return c.PollInterval
	}
	return DefaultPollInterval
}

func (c *CLI) streamDuration() time.Duration {
	if c.StreamDuration > 0 {
		return c.StreamDuration
	}
	return DefaultStreamDuration
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if code := c.run(ctx); code != 0 {
		c.Exit(code)
	}
}

func (c *CLI) run(ctx context.Context) int {
	var args []string
	if len(c.Args) > 1 {
		args = c.Args[1:]
	}
	if len(args) == 0 {
		c.PrintUsage()
		return 0
	}

	root := c.rootCommand()
	if !c.knownCommand(root, args) {
		c.printWarning(fmt.Sprintf("'%s' is not a structure command.", args[0]))
		fmt.Fprintf(c.Out, "See '%s' to see all available commands.\n\n", c.green("structure help"))
		return 1
	}

	root.SetArgs(args)
	err := root.ExecuteContext(ctx)

	if notice := c.updater().Check(ctx, c.Version); notice != "" {
		fmt.Fprintln(c.Out, notice)
		c.printNote(fmt.Sprintf("Use %s to upgrade Structure globally.", c.green("`sudo`")))
	}

	if err != nil {
		if !errors.Is(err, errReported) {
			c.printError(err.Error())
		}
		return 1
	}
	return 0
}

// knownCommand reports whether args start with a registered command or a
// root flag such as --help.
func (c *CLI) knownCommand(root *cobra.Command, args []string) bool {
	if strings.HasPrefix(args[0], "-") {
		return true
	}
	cmd, _, err := root.Find(args)
	return err == nil && cmd != root
}

func (c *CLI) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "structure",
		Short:         "Deploy and manage applications on Structure",
		Version:       c.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.PrintUsage()
			return nil
		},
	}
	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.SetVersionTemplate("Structure CLI version: {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == root {
			c.PrintUsage()
			return
		}
		defaultHelp(cmd, args)
	})

	root.AddCommand(
		c.loginCommand(),
		c.logoutCommand(),
		c.tokenCommand(),
		c.versionCommand(),
		c.createCommand(),
		c.deployCommand(),
		c.pullCommand(),
		c.statusCommand("run", "Run an app", "reload", "Running application..."),
		c.statusCommand("stop", "Stop an app", "stopped", "Stopping application..."),
		c.statusCommand("reload", "Restart and rebuild an app", "reload", "Reloading application...", "restart"),
		c.removeCommand(),
		c.listCommand(),
		c.logsCommand(),
		c.sshCommand(),
		c.sshAddCommand(),
		c.uiCommand(),
	)
	root.InitDefaultHelpCmd()
	return root
}

// loginRequired wraps run so that it only executes with a stored token.
func (c *CLI) loginRequired(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if _, err := c.authSvc().Token(); err != nil {
			if !errors.Is(err, auth.ErrNotLoggedIn) {
				c.logger().Debug("Token lookup failed", zap.Error(err))
			}
			return c.warn(auth.NotLoggedInMessage)
		}
		return run(cmd, args)
	}
}

// appArg returns the application named positionally or with --app.
func appArg(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	app, _ := cmd.Flags().GetString("app")
	return app
}

func addAppFlag(cmd *cobra.Command) {
	cmd.Flags().String("app", "", "application name")
}

func (c *CLI) missingApp(name string, usage ...string) error {
	arg := "--app APP_NAME"
	if len(usage) > 0 {
		arg = usage[0]
	}
	return c.warn(fmt.Sprintf("No application specified; please provide one.\nUsage: structure %s %s", name, c.green(arg)))
}

func (c *CLI) printMessage(prefix string, colorize func(a ...interface{}) string, message string) {
	fmt.Fprintf(c.Err, "\n%s%s\n", colorize(prefix), message)
}

func (c *CLI) printNote(message string) {
	c.printMessage("Note: ", c.green, message)
}

func (c *CLI) printWarning(message string) {
	c.printMessage("Warning: ", c.yellow, message)
}

func (c *CLI) printError(message string) {
	c.printMessage("Error: ", c.red, message)
}

// warn prints a warning and returns errReported.
func (c *CLI) warn(message string) error {
	c.printWarning(message)
	return errReported
}

// fail prints an error and returns errReported.
func (c *CLI) fail(message string) error {
	c.printError(message)
	return errReported
}

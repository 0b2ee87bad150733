package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thedittmer/informant/internal/config"
	"github.com/thedittmer/informant/internal/feed"
	"github.com/thedittmer/informant/internal/reader"
	"github.com/thedittmer/informant/internal/storage"
	"github.com/thedittmer/informant/internal/ui"
)

const (
	// ExitFatal is returned when the feed cannot be fetched or the state
	// cannot be saved. check never returns it as a count.
	ExitFatal = 255
	// ExitError covers usage errors and unknown items.
	ExitError = 1
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	debug   bool
	raw     bool
	noCache bool
	file    string

	exitCode int
}

// Execute runs informant with the process arguments and returns the exit
// status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return ExitCode(err)
	}
	return a.exitCode
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, reader.ErrFetch), errors.Is(err, reader.ErrSave):
		return ExitFatal
	default:
		return ExitError
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "informant",
		Short: "Read news before you upgrade",
		Long: `informant fetches a news feed, remembers which items you have read and
lets you check, list and read the unread ones.

Installed as a package manager hook, "informant check" interrupts an upgrade
while unread news is pending: its exit status is the number of unread items.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("informant {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "print diagnostics and never write the state file")
	flags.BoolVar(&a.raw, "raw", false, "print item bodies without converting markup")
	flags.StringVar(&a.file, "file", "", "state file location (default $INFORMANT_FILE or "+config.DefaultStatePath+")")
	flags.BoolVar(&a.noCache, "no-cache", false, "fetch the feed even if the cached copy is fresh")

	root.AddCommand(a.checkCommand())
	root.AddCommand(a.listCommand())
	root.AddCommand(a.readCommand())
	return root
}

// open loads configuration and state and resolves the feed for one command.
func (a *app) open(ctx context.Context) (*reader.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if a.file != "" {
		cfg.File = a.file
	}

	logger := log.New(io.Discard, "", 0)
	if a.debug {
		logger = log.New(a.errOut, "informant: ", log.Ltime)
	}
	logger.Printf("Using state file %s and feed %s", cfg.File, cfg.FeedURL)

	width := cfg.Width()
	if f, ok := a.out.(*os.File); ok {
		width = ui.TerminalWidth(f, width)
	}

	return reader.Open(ctx, reader.Deps{
		Store: storage.NewStorage(cfg.File, logger),
		Fetcher: feed.NewFetcher(feed.Config{
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent(version),
			Logger:    logger,
		}),
		Renderer: ui.NewRenderer(a.out, ui.Options{
			Width:      width,
			Raw:        a.raw,
			DateFormat: cfg.DateFormat,
		}),
		In:     a.in,
		Out:    a.out,
		Logger: logger,
	}, reader.Options{
		FeedURL: cfg.FeedURL,
		NoCache: a.noCache,
		DryRun:  a.debug,
	})
}

func (a *app) printError(err error) {
	styles := ui.NewStyles(lipgloss.NewRenderer(a.errOut))
	fmt.Fprintln(a.errOut, styles.Error.Render("error:"), err)
	if errors.Is(err, storage.ErrPermission) {
		fmt.Fprintln(a.errOut, "Run informant as root, or pass --file to use a writable location.")
	}
}

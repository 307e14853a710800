package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"inboxstamp/internal/app"
	"inboxstamp/internal/config"
	"inboxstamp/internal/domain"
	appErrors "inboxstamp/internal/errors"
	"inboxstamp/internal/infra/fs"
	"inboxstamp/internal/logging"
	"inboxstamp/internal/presentation"
	"inboxstamp/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		exitWithError(err)
	}
}

func newRootCmd() *cobra.Command {
	var opts config.Options

	cmd := &cobra.Command{
		Use:   "inboxstamp",
		Short: "Prefix inbox files with their creation timestamp",
		Long: "inboxstamp renames every plain file in the inbox folder to YYYY-MM-DD_HHMMSS_<name>,\n" +
			"using the file's creation time. Files that already carry a prefix are left alone.\n\n" +
			"By default the inbox is " + config.DefaultInboxName + " two levels above the executable.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			// The TUI owns the terminal, so it only logs to a file.
			var fallback io.Writer = os.Stderr
			if cfg.TUI {
				fallback = nil
			}
			logger, closeLog, err := newLogger(cfg, fallback)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "log", cfg.LogFile, err)
			}
			defer closeLog()

			if cfg.TUI {
				return runTUI(cmd.Context(), cfg, logger)
			}
			return run(cmd.Context(), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.InboxDir, "inbox", "i", "", "Inbox directory to normalize")
	flags.StringVar(&opts.VaultRoot, "vault-root", "", "Vault root holding the inbox folder")
	flags.StringVar(&opts.InboxName, "inbox-name", "", "Inbox folder name below the vault root (default "+config.DefaultInboxName+")")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	flags.StringVar(&opts.LogFile, "log-file", "", "Append timestamped log lines to this file instead of stderr")
	flags.BoolVarP(&opts.DryRun, "dry-run", "d", false, "Show the renames without performing them")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVarP(&opts.TUI, "tui", "t", false, "Interactive mode with preview and confirmation")

	return cmd
}

func newLogger(cfg config.Config, fallback io.Writer) (logging.Logger, func() error, error) {
	if cfg.LogFile == "" {
		return logging.New(fallback, cfg.Verbose), func() error { return nil }, nil
	}
	return logging.Open(cfg.LogFile, cfg.Verbose)
}

func run(ctx context.Context, cfg config.Config, logger logging.Logger) error {
	osfs := fs.OSFS{}
	printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}

	printer.PrintHeader(cfg.InboxDir)

	normalizer := app.Normalizer{FS: osfs, Times: osfs, Logger: logger}
	report, err := normalizer.Normalize(ctx, cfg.InboxDir, cfg.DryRun)
	if err != nil {
		if len(report.Outcomes) > 0 {
			printer.PrintReport(report)
		}
		printer.PrintAborted()
		return err
	}

	printer.PrintReport(report)
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, logger logging.Logger) error {
	// The program keeps ctx; q only cancels the work so the final report still arrives.
	work, stopWork := context.WithCancel(ctx)
	defer stopWork()

	osfs := fs.OSFS{}
	var program *tea.Program

	planner := app.Planner{
		FS:     osfs,
		Times:  osfs,
		Logger: logger,
		OnProgress: func(current, total int, name string) {
			program.Send(tui.ScanProgressMsg{Current: current, Total: total})
		},
	}
	executor := app.Executor{
		FS:     osfs,
		Logger: logger,
		OnProgress: func(current, total int, name string) {
			program.Send(tui.RenameProgressMsg{Current: current, Total: total, File: name})
		},
	}

	model := tui.NewModel(tui.Config{
		InboxDir: cfg.InboxDir,
		DryRun:   cfg.DryRun,
		Verbose:  cfg.Verbose,
		ExecuteRename: func(plan domain.RenamePlan) tea.Cmd {
			return func() tea.Msg {
				report, err := executor.Execute(work, plan)
				return tui.RenameDoneMsg{Report: report, Err: err}
			}
		},
		Cancel: stopWork,
	})
	program = tea.NewProgram(model, tea.WithContext(ctx))

	go func() {
		plan, err := planner.Plan(work, cfg.InboxDir)
		if err != nil {
			program.Send(tui.ErrorMsg{Err: err})
			return
		}
		program.Send(tui.PlanReadyMsg{Plan: plan})
	}()

	final, err := program.Run()
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if m.Executed {
		printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}
		printer.PrintHeader(cfg.InboxDir)
		printer.PrintReport(m.Report)
	}
	if m.Err != nil && appErrors.Fatal(m.Err) {
		return m.Err
	}
	return nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}

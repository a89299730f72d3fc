package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/config"
	"github.com/zephyrtronium/calculator/internal/lines"
	"github.com/zephyrtronium/calculator/internal/tui"
	"github.com/zephyrtronium/calculator/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
	lines      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:   "calc",
		Short: "A keystroke calculator",
		Long: `calc is a calculator driven by keystrokes. Digits, the decimal point,
+ - * / and parentheses are typed into the display; = or Enter evaluates it,
Esc or C clears it, and Backspace deletes the last character.

When standard input is a terminal, calc runs full screen. Otherwise each input
line is a keystroke script and the display is printed after every line.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculator(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	root.Flags().BoolVar(&opts.lines, "lines", false, "read keystroke lines even if standard input is a terminal")
	root.AddCommand(newEvalCmd(&opts))
	return root
}

func newEvalCmd(opts *options) *cobra.Command {
	var echo bool
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions and print their results",
		Long: `Evaluate each argument as an expression and print its result, or the
error that prevented it. With no arguments, each non-blank line of standard
input is an expression. The exit status is 1 if any expression failed.

Arguments after the first are never read as flags. To start with a negative
number, end the flags with --:

	calc eval -- -2+3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := loadConfig(cmd, *opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			var total, failed int
			each := func(src string) {
				total++
				if !evalOne(w, src, echo) {
					failed++
					log.Debug("expression failed", slog.String("expr", src))
				}
			}
			if len(args) > 0 {
				for _, arg := range args {
					each(arg)
				}
			} else if err := eachLine(cmd.InOrStdin(), each); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, total)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&echo, "echo", false, "print parse trees")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// evalOne prints the result of one expression and reports whether it
// succeeded.
func evalOne(w io.Writer, src string, echo bool) bool {
	a, err := calculator.Parse(src)
	if err != nil {
		fmt.Fprintln(w, err)
		return false
	}
	if echo {
		fmt.Fprintf(w, "%v : ", a)
	}
	r, err := a.Eval()
	if err != nil {
		fmt.Fprintln(w, err)
		return false
	}
	fmt.Fprintln(w, calculator.FormatResult(r))
	return true
}

func eachLine(r io.Reader, f func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		f(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading expressions: %w", err)
	}
	return nil
}

func loadConfig(cmd *cobra.Command, opts options) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, nil, fmt.Errorf("--log-level: %w", err)
		}
	}
	return cfg, cfg.Logger(cmd.ErrOrStderr()), nil
}

func runCalculator(cmd *cobra.Command, opts options) error {
	cfg, log, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	sess := session.New(session.WithLogger(log))
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !opts.lines && isTerminal(f) {
		log.Debug("starting terminal ui")
		p := tea.NewProgram(tui.New(sess, cfg),
			tea.WithContext(cmd.Context()),
			tea.WithInput(f),
			tea.WithOutput(cmd.OutOrStdout()),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("terminal ui: %w", err)
		}
		return nil
	}
	log.Debug("reading keystroke lines")
	return lines.Run(cmd.Context(), in, cmd.OutOrStdout(), sess, cfg.Keys)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

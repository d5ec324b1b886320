package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/heathj/govox/automation"
	"github.com/heathj/govox/config"
	"github.com/heathj/govox/cursors"
	"github.com/heathj/govox/navigator"
	"github.com/heathj/govox/parser"
)

type app struct {
	v   *viper.Viper
	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.StandardLogger()}
	var cfgFile string

	root := &cobra.Command{
		Use:          "govox",
		Short:        "Screen reader style navigation over HTML documents",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			if err := cfg.Log.Apply(a.log); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("log-level", "warn", "log level")
	flags.String("log-format", "text", "log format: text or json")
	flags.Bool("desktop", false, "put the document under a desktop node")
	bindFlags(a.v, flags, map[string]string{
		"log.level":      "log-level",
		"log.format":     "log-format",
		"parser.desktop": "desktop",
	})

	root.AddCommand(a.treeCmd(), a.navCmd(), a.commandsCmd())
	return root
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (a *app) parse(cmd *cobra.Command, path string) (*automation.Node, error) {
	var in io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open document")
		}
		defer f.Close()
		in = f
	}
	root, err := parser.NewParser(in, parser.WithDesktop(a.cfg.Parser.Desktop)).Start()
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return root, nil
}

func (a *app) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the accessibility tree of an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.parse(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), root.String())
			return nil
		},
	}
}

func (a *app) navCmd() *cobra.Command {
	var noWrap bool
	cmd := &cobra.Command{
		Use:   "nav FILE [COMMAND...]",
		Short: "Run navigation commands over an HTML document",
		Long: `Run navigation commands over an HTML document and print what each
resulting range reads as. Without commands, they are read from standard
input, one per line.

Examples:
  govox nav page.html next-word next-word next-line
  govox nav --start main --no-wrap page.html previous-object`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.parse(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			opts := []navigator.Option{
				navigator.WithWrap(a.cfg.Nav.Wrap && !noWrap),
				navigator.WithLogger(a.log),
				navigator.WithEarcons(cursors.EarconsFunc(func() { fmt.Fprintln(out, "[wrap]") })),
				navigator.WithSelectionSink(cursors.SelectionSinkFunc(func(sel cursors.Selection) {
					a.log.WithFields(logrus.Fields{
						"anchor":       sel.Anchor.Role,
						"anchorOffset": sel.AnchorOffset,
						"focus":        sel.Focus.Role,
						"focusOffset":  sel.FocusOffset,
					}).Info("selection")
				})),
			}
			if id := a.cfg.Nav.Start; id != "" {
				start := parser.ByID(root, id)
				if start == nil {
					return errors.Errorf("no element with id %q", id)
				}
				opts = append(opts, navigator.WithStart(start))
			}
			nav := navigator.New(root, opts...)
			fmt.Fprintf(out, "start: %s\n", navigator.Describe(nav.Range()))

			commands := args[1:]
			if len(commands) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						commands = append(commands, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return errors.Wrap(err, "read commands")
				}
			}
			for _, c := range commands {
				r, err := nav.Do(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", c, navigator.Describe(r))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noWrap, "no-wrap", false, "stay put at the edges of the document")
	cmd.Flags().String("start", "", "id of the element to start on")
	bindFlags(a.v, cmd.Flags(), map[string]string{"nav.start": "start"})
	return cmd
}

func (a *app) commandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the navigation commands",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range navigator.Commands() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

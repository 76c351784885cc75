package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Gthulhu/cpupower/app"
	"github.com/Gthulhu/cpupower/backend"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/governor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func governorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "governor",
		Short: "Inspect and tune cpufreq governors",
	}

	cmd.AddCommand(governorSpecsCommand())
	cmd.AddCommand(governorShowCommand())
	cmd.AddCommand(governorSetCommand())

	return cmd
}

func sessionManager(cmd *cobra.Command) (*governor.SessionManager, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	b, err := backend.New(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return governor.NewSessionManager(governor.NewCatalog(), b, app.DeviceLimits(cfg)), nil
}

func parseKind(name string) (domain.GovernorKind, error) {
	kind := domain.ParseGovernorKind(name)
	if kind == domain.GovernorUnknown {
		return kind, errors.Wrapf(domain.ErrGovernorUnavailable, "governor %q", name)
	}
	return kind, nil
}

func governorSpecsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "specs <governor>",
		Short: "List the tunable parameters of a governor with their current bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			sessions, err := sessionManager(cmd)
			if err != nil {
				return err
			}
			params := sessions.Describe(cmd.Context(), kind)
			if len(params) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no tunable parameters.\n", kind)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL\tTYPE\tRANGE")
			fmt.Fprintln(w, "----\t-----\t----\t-----")
			for _, p := range params {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Label, p.Type, describeRange(p))
			}
			return w.Flush()
		},
	}
}

func describeRange(p domain.ParameterView) string {
	switch {
	case len(p.Choices) > 0:
		choices := make([]string, len(p.Choices))
		for i, c := range p.Choices {
			choices[i] = fmt.Sprint(c)
		}
		return strings.Join(choices, ",")
	case p.Min != nil && p.Max != nil:
		return fmt.Sprintf("%d..%d", *p.Min, *p.Max)
	case p.Type == domain.ParamBoolean:
		return "0,1"
	}
	return "-"
}

func governorShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <governor>",
		Short: "Print the current parameter values of a governor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			sessions, err := sessionManager(cmd)
			if err != nil {
				return err
			}
			session, err := sessions.Open(cmd.Context(), kind)
			if err != nil {
				return err
			}
			defer session.Cancel()

			printSession(cmd, session.View())
			return nil
		},
	}
}

func printSession(cmd *cobra.Command, view domain.SessionView) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tVALUE")
	for _, f := range view.Fields {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Label, f.Value)
	}
	w.Flush()
	if view.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), view.Message)
	}
}

func governorSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <governor> <name=value>...",
		Short: "Validate and write governor parameters",
		Long: `Open an edit session on the governor, apply the assignments, and commit
when every parameter is valid. Nothing is written if validation fails.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			sessions, err := sessionManager(cmd)
			if err != nil {
				return err
			}
			session, err := sessions.Open(cmd.Context(), kind)
			if err != nil {
				return err
			}
			defer session.Cancel()

			for _, assignment := range args[1:] {
				name, value, ok := strings.Cut(assignment, "=")
				if !ok {
					return fmt.Errorf("expected name=value, got %q", assignment)
				}
				if _, err := session.Set(cmd.Context(), name, value); err != nil {
					return errors.Wrapf(err, "set %s", name)
				}
			}

			report, err := session.Commit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", strings.Join(report.Written, ", "))
			for name, reason := range report.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to write %s: %s\n", name, reason)
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d of %d parameters were not written", len(report.Failed), len(report.Failed)+len(report.Written))
			}
			return nil
		},
	}
}

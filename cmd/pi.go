package cmd

import (
	"fmt"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/workload"
	"github.com/spf13/cobra"
)

func piCommand() *cobra.Command {
	var digits int64
	cmd := &cobra.Command{
		Use:   "pi",
		Short: "Compute digits of Pi to load the cpu",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			if digits <= 0 {
				return domain.ErrInvalidDigits
			}
			n := min(digits, domain.MaxDigits)

			last := -1
			pi, err := workload.ComputePi(cmd.Context(), n, func(pct int) {
				if pct/10 != last/10 {
					fmt.Fprintf(cmd.ErrOrStderr(), "%d%%\n", pct)
				}
				last = pct
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), workload.Truncate(pi, domain.MaxDigitsResult))
			return nil
		},
	}

	cmd.Flags().Int64Var(&digits, "digits", 1000, "Number of decimal digits")

	return cmd
}

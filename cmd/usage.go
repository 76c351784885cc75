package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Gthulhu/cpupower/usage"
	"github.com/spf13/cobra"
)

func usageCommand() *cobra.Command {
	var cycles int
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Print cpu usage samples",
		Long:  `Take consecutive usage measurements from /proc/stat and print one row per sample.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cycles <= 0 {
				return fmt.Errorf("--cycles must be positive, got %d", cycles)
			}

			source := usage.NewProcStatSource(cfg.Sampler.StatPath, 1+cfg.Sampler.MaxCores)
			sampler := usage.NewSampler(source, cfg.Sampler)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			header := []string{"SAMPLE", "ALL"}
			for core := 1; core < sampler.Channels(); core++ {
				header = append(header, fmt.Sprintf("CPU%d", core-1))
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))

			for i := range cycles {
				vector, err := sampler.Sample(cmd.Context())
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "sample %d: %v\n", i+1, err)
					continue
				}
				row := []string{fmt.Sprint(i + 1)}
				for _, v := range vector {
					row = append(row, fmt.Sprintf("%.1f%%", v))
				}
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&cycles, "cycles", 1, "Number of samples to take")

	return cmd
}

package cmd

import (
	"github.com/Gthulhu/cpupower/app"
	"github.com/spf13/cobra"
)

func serveCommand() *cobra.Command {
	var host string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Long:  `Start the usage sampler and serve the usage, device, governor and workload API until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			restApp := app.NewRestAppWithConfig(cfg)
			if err := restApp.Err(); err != nil {
				return err
			}
			restApp.Run()
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen address, overrides server.host")

	return cmd
}

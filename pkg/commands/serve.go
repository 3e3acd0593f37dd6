package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/logger"
	"tableflip.dev/agenda/pkg/runner/api"
)

func addServe(topLevel *cobra.Command) {
	var (
		host    string
		port    int
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP JSON API",
		Long: `Serve exposes the agenda over a small JSON API for web front ends:
items, days, the weekly analysis, suggestions and the daily quote.`,
		Example: `
agenda serve
agenda serve --port 9000 --allow-origin http://localhost:5173
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if port < 0 || port > 65535 {
				return fmt.Errorf("invalid port %d", port)
			}
			log := so.Logger(true)
			defer func() { _ = logger.Sync(log) }()

			svc, _, err := so.Service(cmd.Context(), log)
			if err != nil {
				return err
			}

			h := strings.TrimSpace(host)
			if h == "" {
				h = "127.0.0.1"
			}
			runner := api.Runner{
				Service:        svc,
				Logger:         log,
				ListenAddr:     net.JoinHostPort(h, strconv.Itoa(port)),
				AllowedOrigins: origins,
				OnListening: func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "API listening on http://%s/api\n", a.String())
				},
			}
			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "host/interface to listen on")
	cmd.Flags().IntVar(&port, "port", 8081, "port to listen on (use 0 for random)")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "CORS allowed origin, repeatable (default any)")

	topLevel.AddCommand(cmd)
}

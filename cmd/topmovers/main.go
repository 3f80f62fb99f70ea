package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"top-movers-server/internal/app"
	"top-movers-server/internal/config"
	"top-movers-server/internal/mcpserver"
	"top-movers-server/internal/render"
	"top-movers-server/internal/toolclient"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "topmovers",
	Short:        "Alpha Vantage top gainers, losers and most active tickers",
	SilenceUsage: true,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the topMovers tool over MCP on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		registry, err := app.NewRegistry(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		s, err := mcpserver.New(cmd.Context(), cfg.MCP.Name, cfg.MCP.Version, registry)
		if err != nil {
			return err
		}
		return mcpserver.RunStdio(cmd.Context(), s)
	},
}

var moversCmd = &cobra.Command{
	Use:   "movers",
	Short: "Print the top movers tables",
	Long: "Print the top movers tables. With --endpoint the tool is called on a running\n" +
		"server; otherwise it runs in-process with the local configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, _ := cmd.Flags().GetString("endpoint")
		limit, _ := cmd.Flags().GetString("limit")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var caller render.ToolCaller
		if endpoint != "" {
			c, err := toolclient.New(endpoint, timeout)
			if err != nil {
				return err
			}
			caller = c
		} else {
			registry, err := app.NewRegistry(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			caller = registry
		}

		surface := render.NewTermSurface()
		runErr := render.New(caller).Invoke(cmd.Context(), surface, limit)
		fmt.Fprint(cmd.OutOrStdout(), surface.String())
		if runErr != nil {
			return fmt.Errorf("movers: %w", runErr)
		}
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	app.SetupLogging(cfg)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/app.yaml", "path to the YAML config file")

	moversCmd.Flags().String("endpoint", "", "base URL of a running server, e.g. http://localhost:3000")
	moversCmd.Flags().String("limit", "5", "rows per table (1-20)")
	moversCmd.Flags().Duration("timeout", 10*time.Second, "request timeout when using --endpoint")

	rootCmd.AddCommand(mcpCmd, moversCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

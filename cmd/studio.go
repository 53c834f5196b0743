package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Rana718/synthgen/internal/studio"
)

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Open the interactive generator in the browser",
	Long: `
Launch the web form for configuring columns, generating a table, previewing
it and downloading it as CSV. Each browser session keeps its own settings
and generated table.

Examples:
  synthgen studio
  synthgen studio --port 3000 --browser=false
  synthgen studio --seed 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("port") {
			cfg.Studio.Port, _ = cmd.Flags().GetInt("port")
		}
		browser := cfg.Studio.Browser
		if cmd.Flags().Changed("browser") {
			browser, _ = cmd.Flags().GetBool("browser")
		}

		log := newLogger(cmd)
		gen := newGenerator(cmd, cfg, nil)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Debug().Int("port", cfg.Studio.Port).Dur("session_idle", cfg.Studio.SessionIdle).Msg("starting studio")
		return studio.NewServer(cfg, gen, log).Start(ctx, browser)
	},
}

func init() {
	rootCmd.AddCommand(studioCmd)
	studioCmd.Flags().IntP("port", "p", 5555, "Port to run studio on")
	studioCmd.Flags().BoolP("browser", "b", true, "Open browser automatically")
	studioCmd.Flags().Uint64("seed", 0, "Seed for reproducible output")
}

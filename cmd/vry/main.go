package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jose-valero/vry/internal/app/service"
	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/config"
	"github.com/jose-valero/vry/internal/infra/logging"
	"github.com/jose-valero/vry/internal/infra/storage"
)

// se pisa con -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath   string
	runConfig    bool
	headless     bool
	verbosity    int
	historyLimit int
)

var rootCmd = &cobra.Command{
	Use:   "vry",
	Short: "VALORANT lobby ranks, stats and skins in your terminal",
	Long: `vry follows the running VALORANT client and shows every player in the lobby:
party, agent, rank, peak rank, win rate, headshot %, skins and when you last met them.

The table is also broadcast to browser overlays over a local websocket and can be
mirrored to Discord (bot, webhook and Rich Presence).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runApp(ctx)
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <Name#Tag|puuid>",
	Short: "Print the vtl.lol link for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := service.VTLURL(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <puuid>",
	Short: "List the stored encounters with a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := uuid.Parse(args[0]); err != nil {
			return fmt.Errorf("invalid puuid %q: %w", args[0], err)
		}
		logging.SetupStderr(1)
		env := config.LoadEnv()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		db, err := storage.Open(ctx, env.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storage.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		enc := service.NewEncounterService(storage.NewEncounterRepo(db))
		hist, err := enc.History(ctx, args[0], historyLimit)
		if err != nil {
			return err
		}
		if len(hist) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no encounters stored for", args[0])
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), historyTable(hist, time.Now()))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vry version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "vry", version)
	},
}

func historyTable(hist []domain.Encounter, now time.Time) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Seen", "Name", "Agent", "Map", "Rank", "RR", "Match")
	for _, e := range hist {
		t.Row(
			humanize.RelTime(e.SeenAt, now, "ago", "from now"),
			e.Name, e.Agent, e.Map,
			domain.RankName(e.Tier), fmt.Sprint(e.RR), e.MatchID,
		)
	}
	return t.Render()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "config.json", "path to config.json")
	rootCmd.Flags().BoolVar(&runConfig, "config", false, "open the configurator before starting")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal UI (logs to stderr)")
	rootCmd.Flags().IntVarP(&verbosity, "verbose", "v", -1, "log verbosity 0-3 (default: saved setting)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max encounters to show")

	rootCmd.AddCommand(lookupCmd, historyCmd, versionCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

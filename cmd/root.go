package cmd

import (
	"os"

	"github.com/incident-desk/backend/internal/config"
	"github.com/spf13/cobra"
)

// v - 환경변수와 플래그를 함께 읽는 설정 인스턴스
var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "incident-desk",
	Short: "Incident management REST backend",
	Long: `incident-desk serves the incident management API:
entity CRUD for incidents and related records, AI-assisted actions
with deterministic fallbacks, and an LLM passthrough.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	return config.Load(v)
}

func bindFlag(key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}

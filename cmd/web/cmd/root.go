package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version se inyecta con -ldflags "-X petclinic-web/cmd/web/cmd.Version=...".
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "web",
	Short: "Petclinic web tier",
	Long: `Web tier of the petclinic application. Serves the entity screens
(owners, pets, pet types, vets, specialties, visits) on top of the
petclinic REST API.`,
	SilenceUsage: true,
	// Sin subcomando se comporta como "serve".
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml if present)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

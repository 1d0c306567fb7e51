package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/sio/cmd/codec"
	"github.com/ValentinKolb/sio/cmd/store"
	"github.com/ValentinKolb/sio/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "sio",
		Short: "self-describing binary object codec",
		Long: fmt.Sprintf(`sio (v%s)

Encode, inspect and store objects in a tagged, self-describing binary format.
Every attribute carries its name and kind, so data can be read without the
schema that wrote it.`, Version),
		PersistentPreRunE: util.Setup,
		SilenceUsage:      true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sio",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sio v%s\n", Version)
		},
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (flags, environment and .env files)",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(util.GetConfig().String())
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(codec.EncodeCmd)
	RootCmd.AddCommand(codec.InspectCmd)
	RootCmd.AddCommand(codec.SchemasCmd)
	RootCmd.AddCommand(codec.BenchCmd)
	RootCmd.AddCommand(codec.MetricsCmd)
	RootCmd.AddCommand(store.StoreCommands)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupConfigFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package store

import (
	"github.com/ValentinKolb/sio/cmd/util"
	"github.com/ValentinKolb/sio/lib/store"
	"github.com/spf13/cobra"
)

var (
	blobStore store.IBlobStore

	// StoreCommands represents the object store command group
	StoreCommands = &cobra.Command{
		Use:                "store",
		Short:              "Persist and retrieve encoded objects",
		PersistentPreRunE:  openStore,
		PersistentPostRunE: closeStore,
	}
)

func init() {
	// Add subcommands
	StoreCommands.AddCommand(putCmd)
	StoreCommands.AddCommand(getCmd)
	StoreCommands.AddCommand(listCmd)
	StoreCommands.AddCommand(delCmd)
}

// openStore sets up the configuration and opens the configured store.
// Cobra only runs the nearest persistent hook, so the root setup is repeated here.
func openStore(cmd *cobra.Command, args []string) error {
	if err := util.Setup(cmd, args); err != nil {
		return err
	}

	var err error
	blobStore, err = util.OpenStore(util.GetConfig())
	return err
}

// closeStore releases the store opened by openStore
func closeStore(_ *cobra.Command, _ []string) error {
	if blobStore == nil {
		return nil
	}
	err := blobStore.Close()
	blobStore = nil
	return err
}

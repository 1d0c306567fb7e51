package store

import (
	"fmt"
	"io"
	"os"

	"github.com/ValentinKolb/sio/cmd/codec"
	"github.com/ValentinKolb/sio/cmd/util"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	putCmd = &cobra.Command{
		Use:   "put [file]",
		Short: "Stores an encoded object (or a TOML document with --toml) and prints its id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}

			asToml := viper.GetBool("toml")
			data, err := util.ReadInput(path, viper.GetBool("hex") && !asToml)
			if err != nil {
				return err
			}
			if asToml {
				if data, err = codec.EncodeDocument(data); err != nil {
					return err
				}
			} else if err := codec.Inspect(io.Discard, data, "text", false, util.ReaderOptions(util.GetConfig())...); err != nil {
				return fmt.Errorf("input is not a valid sequence: %w", err)
			}

			id, err := blobStore.Create(data)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [id]",
		Short: "Reads the object stored under an id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %s: %w", args[0], err)
			}

			data, ok, err := blobStore.Read(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no object with id %s", id)
			}

			if viper.GetBool("inspect") {
				return codec.Inspect(os.Stdout, data, "text", true, util.ReaderOptions(util.GetConfig())...)
			}
			return util.WriteOutput(viper.GetString("out"), data, viper.GetBool("hex"))
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists the ids of all stored objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := blobStore.List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Printf("%s  %s\n", id, id.Time().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [id]",
		Short: "Deletes the object stored under an id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %s: %w", args[0], err)
			}
			if err := blobStore.Delete(id); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
)

func init() {
	putCmd.Flags().Bool("toml", false, util.WrapString("Treat the input as TOML document and encode it before storing"))
	putCmd.Flags().Bool("hex", false, util.WrapString("Read the input as hexadecimal text"))

	getCmd.Flags().String("out", "-", util.WrapString("Destination of the stored bytes (- for stdout)"))
	getCmd.Flags().Bool("hex", false, util.WrapString("Write the bytes as hexadecimal text"))
	getCmd.Flags().Bool("inspect", false, util.WrapString("Print the decoded attributes instead of the raw bytes"))
}

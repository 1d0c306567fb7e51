package util

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ValentinKolb/sio/lib/common"
	"github.com/ValentinKolb/sio/lib/store"
	"github.com/ValentinKolb/sio/lib/store/mstore"
	"github.com/ValentinKolb/sio/lib/store/pstore"
	"github.com/ValentinKolb/sio/lib/wire"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// SetupConfigFlags adds the flags shared by all commands
func SetupConfigFlags(cmd *cobra.Command) {
	key := "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Log level (debug, info, warn, error)"))

	key = "max-length"
	cmd.PersistentFlags().Int(key, wire.DefaultMaxLength, WrapString("Largest byte array or string length (in bytes) the decoder accepts"))

	key = "store"
	cmd.PersistentFlags().String(key, string(common.StorePebble), WrapString("Object store backend (memory, pebble). The memory store only lives as long as the command"))

	key = "data-dir"
	cmd.PersistentFlags().String(key, "sio-data", WrapString("Directory of the pebble object store"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("sio")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags (including inherited ones) to viper
func BindCommandFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return err
	}
	return viper.BindPFlags(cmd.Flags())
}

// GetConfig reads the configuration from viper
func GetConfig() *common.Config {
	return &common.Config{
		LogLevel:  viper.GetString("log-level"),
		MaxLength: viper.GetInt("max-length"),
		Store:     common.StoreType(viper.GetString("store")),
		DataDir:   viper.GetString("data-dir"),
	}
}

// Setup binds the flags of cmd, validates the configuration and initializes the loggers.
// It is used as PersistentPreRunE by the root command.
func Setup(cmd *cobra.Command, _ []string) error {
	if err := BindCommandFlags(cmd); err != nil {
		return err
	}
	conf := GetConfig()
	if err := conf.Validate(); err != nil {
		return err
	}
	return common.InitLoggers(*conf)
}

// ReaderOptions returns the decoder options of the configuration
func ReaderOptions(conf *common.Config) []wire.ReaderOption {
	return []wire.ReaderOption{wire.WithMaxLength(conf.MaxLength)}
}

// OpenStore creates the object store selected by the configuration
func OpenStore(conf *common.Config) (store.IBlobStore, error) {
	switch conf.Store {
	case common.StoreMemory:
		return mstore.NewMemoryStore(), nil
	case common.StorePebble:
		return pstore.NewPebbleStore(conf.DataDir)
	default:
		return nil, fmt.Errorf("invalid store %s", conf.Store)
	}
}

// --------------------------------------------------------------------------
// Input / Output
// --------------------------------------------------------------------------

// ReadInput reads all bytes from path, or from stdin if path is empty or "-".
// With asHex the input is decoded from hexadecimal text (whitespace is ignored).
func ReadInput(path string, asHex bool) ([]byte, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if !asHex {
		return data, nil
	}
	return hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
}

// WriteOutput writes data to path, or to stdout if path is empty or "-".
// With asHex the data is written as hexadecimal text.
func WriteOutput(path string, data []byte, asHex bool) error {
	if asHex {
		data = []byte(hex.EncodeToString(data) + "\n")
	}
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

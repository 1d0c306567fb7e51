package common

import (
	"fmt"
	"strings"
)

// StoreType selects the backend of the object store
type StoreType string

const (
	StoreMemory StoreType = "memory"
	StorePebble StoreType = "pebble"
)

// Config holds all configuration parameters of the sio command line tool
type Config struct {
	// Logging configuration
	LogLevel string

	// MaxLength is the largest byte array or string length a decoder accepts
	MaxLength int

	// Object store
	Store   StoreType
	DataDir string
}

// Validate checks the configuration for values the tool cannot work with
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxLength <= 0 {
		return fmt.Errorf("max-length must be positive, got %d", c.MaxLength)
	}
	switch c.Store {
	case StoreMemory:
	case StorePebble:
		if c.DataDir == "" {
			return fmt.Errorf("the pebble store requires a data directory")
		}
	default:
		return fmt.Errorf("invalid store %s. must be one of %s, %s", c.Store, StoreMemory, StorePebble)
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Codec")
	addField("Max Length", fmt.Sprintf("%d bytes", c.MaxLength))

	addSection("Store")
	addField("Type", string(c.Store))
	if c.Store == StorePebble {
		addField("Data Directory", c.DataDir)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

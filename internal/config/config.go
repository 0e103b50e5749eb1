// Package config declares the kong command tree for the uhidkbd binary.
package config

import (
	"github.com/kbforge/uhidkbd/internal/cmd"
)

// LogConfig holds the logging flags shared by every command.
type LogConfig struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"UHIDKBD_LOG_LEVEL"`
	File  string `help:"Optional log file receiving a copy of all records" env:"UHIDKBD_LOG_FILE"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Log        LogConfig `embed:"" prefix:"log."`
	ConfigFile string    `name:"config" help:"Path to a configuration file (JSON/YAML/TOML)" env:"UHIDKBD_CONFIG"`

	Run    cmd.Run           `cmd:"" default:"withargs" help:"Create the virtual keyboard device and forward terminal input"`
	Config cmd.ConfigCommand `cmd:"" help:"Configuration utilities"`
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "nircd",
	Short: "Run an IRC bot defined by a YAML config file",
	Long: `nircd connects to an IRC server, joins configured channels, and
dispatches messages to registered commands, prefix commands, and cogs.

Configuration is read from (in order): the --config flag, ./config.yaml
next to the executable, ~/.nirc, and /etc/nirc/config.yaml. Any value may
be overridden with an NIRC_ prefixed environment variable.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute runs the root command. It is called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (search order: ./config.yaml, ~/.nirc, /etc/nirc/config.yaml)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable verbose logging")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig wires up environment variable overrides and locates the
// config file to read, trying each candidate path in turn.
func initConfig() {
	replacer := strings.NewReplacer("-", "_", ".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.SetEnvPrefix("NIRC")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if filepath.Ext(cfgFile) == "" {
			viper.SetConfigType("yaml")
		}
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "error reading config file %q: %v\n", cfgFile, err)
		} else {
			fmt.Fprintf(os.Stderr, "using config file: %s\n", viper.ConfigFileUsed())
		}
		return
	}

	tryFile := func(path string, assumeYAML bool) bool {
		if _, err := os.Stat(path); err != nil {
			return false
		}
		viper.SetConfigFile(path)
		if assumeYAML {
			viper.SetConfigType("yaml")
		}
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "error reading config file %q: %v\n", path, err)
			return false
		}
		fmt.Fprintf(os.Stderr, "using config file: %s\n", viper.ConfigFileUsed())
		return true
	}

	if exe, err := os.Executable(); err == nil {
		if tryFile(filepath.Join(filepath.Dir(exe), "config.yaml"), false) {
			return
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if tryFile(filepath.Join(home, ".nirc"), true) {
			return
		}
	}

	_ = tryFile("/etc/nirc/config.yaml", false)
}

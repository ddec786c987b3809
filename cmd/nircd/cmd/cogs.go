package cmd

import (
	"fmt"
	"os"

	"github.com/nirc/nirc/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// knownCogs lists the cog ids that examples/cogs registers by name. A real
// deployment would extend this with its own CogFunc values.
var knownCogs = map[string]bool{
	"showcase": true,
}

var cogsCmd = &cobra.Command{
	Use:   "cogs",
	Short: "List and validate the cogs configured for this bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.BotConfig
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}

		if len(cfg.Cogs) == 0 {
			fmt.Println("no cogs configured")
			return nil
		}

		bad := 0
		for _, id := range cfg.Cogs {
			if knownCogs[id] {
				fmt.Printf("ok      %s\n", id)
				continue
			}
			fmt.Printf("unknown %s\n", id)
			bad++
		}

		if bad > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cogsCmd)
}

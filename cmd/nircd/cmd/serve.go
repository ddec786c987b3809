package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nirc/nirc"
	"github.com/nirc/nirc/config"
	"github.com/nirc/nirc/examples/cogs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the server and run until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.BotConfig
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}

		if cfg.Server.Host == "" || cfg.Nick == "" {
			return fmt.Errorf("server.host and nick must be set in config")
		}

		channels := make([]nirc.ChannelJoin, 0, len(cfg.Channels))
		for _, ch := range cfg.Channels {
			channels = append(channels, nirc.ChannelJoin{Name: ch.Name, Key: ch.Key})
		}

		bot := nirc.New(nirc.Config{
			Prefix:       cfg.Prefix,
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			Nick:         cfg.Nick,
			Username:     cfg.Username,
			Realname:     cfg.Realname,
			Password:     cfg.Server.Password,
			Channels:     channels,
			DownloadsDir: cfg.DownloadsDir,
			Debug:        cfg.Debug || viper.GetBool("debug"),
		})

		for _, cogID := range cfg.Cogs {
			switch cogID {
			case "showcase":
				bot.Load("showcase", cogs.Showcase)
			default:
				fmt.Fprintf(os.Stderr, "unknown cog %q, skipping\n", cogID)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "shutting down...")
			bot.Stop()
		}()

		fmt.Fprintf(os.Stderr, "connecting to %s:%d as %s\n", cfg.Server.Host, cfg.Server.Port, cfg.Nick)
		return bot.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

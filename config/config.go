// Package config holds the on-disk configuration shape for a nirc bot:
// server identity, channels to join, and where to save inbound DCC files.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds everything needed to dial and register with a server.
type ServerConfig struct {
	Host     string `yaml:"host"      mapstructure:"host"`
	Port     int    `yaml:"port"      mapstructure:"port"`
	Password string `yaml:"password"  mapstructure:"password"`
}

// BotConfig is the root application config.
type BotConfig struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	Prefix   string `yaml:"prefix"   mapstructure:"prefix"`
	Nick     string `yaml:"nick"     mapstructure:"nick"`
	Username string `yaml:"username" mapstructure:"username"`
	Realname string `yaml:"realname" mapstructure:"realname"`

	// IdentifyPassword is read from and written to the file, but nircd does
	// not pass it to the bot: after registration the bot identifies to
	// NickServ with Server.Password.
	IdentifyPassword string `yaml:"identify_password" mapstructure:"identify_password"`

	// Channels lists the channels to join, in order. ChannelConfig.Key
	// may be empty.
	Channels []ChannelConfig `yaml:"channels" mapstructure:"channels"`

	// DownloadsDir is where inbound DCC files land.
	DownloadsDir string `yaml:"downloads_dir" mapstructure:"downloads_dir"`

	// Cogs lists the ids of the cogs to load on startup. The cmd/nircd
	// "cogs" subcommand validates these ids without connecting.
	Cogs []string `yaml:"cogs" mapstructure:"cogs"`

	// Debug enables verbose logging.
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// ChannelConfig is one entry of BotConfig.Channels.
type ChannelConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	Key  string `yaml:"key"  mapstructure:"key"`
}

// LoadFile reads and parses a YAML config file at path.
func LoadFile(path string) (*BotConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg BotConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *BotConfig) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o644)
}

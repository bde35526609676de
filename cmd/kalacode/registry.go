package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/kenzoyan/kalacode/tools"
	"github.com/kenzoyan/kalacode/tools/builtin"
)

type registryConfig struct {
	ReadFileMaxBytes  int64
	ReadFileDenyPaths []string
	WriteFileEnabled  bool
	WriteFileMaxBytes int
	EditFileEnabled   bool
	FileDenyPaths     []string
	GlobEnabled       bool
	GrepEnabled       bool
	BashEnabled       bool
	BashTimeout       time.Duration
}

func applyRegistryViperDefaults() {
	viper.SetDefault("tools.read_file.max_bytes", 256*1024)
	viper.SetDefault("tools.deny_paths", []string{"config.yaml"})

	viper.SetDefault("tools.write_file.enabled", true)
	viper.SetDefault("tools.write_file.max_bytes", 512*1024)

	viper.SetDefault("tools.edit_file.enabled", true)
	viper.SetDefault("tools.glob.enabled", true)
	viper.SetDefault("tools.grep.enabled", true)

	viper.SetDefault("tools.bash.enabled", true)
	viper.SetDefault("tools.bash.timeout", 30*time.Second)
}

func loadRegistryConfigFromViper() registryConfig {
	applyRegistryViperDefaults()

	denyPaths := append([]string(nil), viper.GetStringSlice("tools.deny_paths")...)

	return registryConfig{
		ReadFileMaxBytes:  int64(viper.GetInt("tools.read_file.max_bytes")),
		ReadFileDenyPaths: denyPaths,
		WriteFileEnabled:  viper.GetBool("tools.write_file.enabled"),
		WriteFileMaxBytes: viper.GetInt("tools.write_file.max_bytes"),
		EditFileEnabled:   viper.GetBool("tools.edit_file.enabled"),
		FileDenyPaths:     denyPaths,
		GlobEnabled:       viper.GetBool("tools.glob.enabled"),
		GrepEnabled:       viper.GetBool("tools.grep.enabled"),
		BashEnabled:       viper.GetBool("tools.bash.enabled"),
		BashTimeout:       viper.GetDuration("tools.bash.timeout"),
	}
}

func registryFromViper() *tools.Registry {
	return buildRegistryFromConfig(loadRegistryConfigFromViper())
}

func buildRegistryFromConfig(cfg registryConfig) *tools.Registry {
	r := tools.NewRegistry()

	r.Register(builtin.NewReadFileTool(cfg.ReadFileMaxBytes, cfg.ReadFileDenyPaths))

	if cfg.WriteFileEnabled {
		wt := builtin.NewWriteFileTool(cfg.WriteFileMaxBytes, cfg.FileDenyPaths)
		r.Register(wt)
	}

	if cfg.EditFileEnabled {
		r.Register(builtin.NewEditFileTool(cfg.FileDenyPaths))
	}

	if cfg.GlobEnabled {
		r.Register(builtin.NewGlobTool())
	}

	if cfg.GrepEnabled {
		r.Register(builtin.NewGrepTool())
	}

	if cfg.BashEnabled {
		r.Register(builtin.NewBashTool(cfg.BashTimeout))
	}

	return r
}

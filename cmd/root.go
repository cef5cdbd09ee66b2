/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/logging"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

var cfgFile string
var workDir string
var minPlayMs int64
var logLevel string
var logFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-history-tools",
	Short: "Performs analysis on Spotify streaming history exports",
	Long: `Reads the "Extended streaming history" ZIP that Spotify sends on request
and reports what you listened to. Every day of the year counts, and a play
only counts if it lasted longer than 10 seconds.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-history-tools.yaml)")

	rootCmd.PersistentFlags().StringVar(
		&workDir, "work_dir", "", "Directory to extract archives under (default is the system temp dir)")
	viper.BindPFlag("work_dir", rootCmd.PersistentFlags().Lookup("work_dir"))

	rootCmd.PersistentFlags().Int64Var(
		&minPlayMs, "min_play_ms", history.DefaultMinPlayMs, "Plays this short or shorter, in milliseconds, are ignored")
	viper.BindPFlag("min_play_ms", rootCmd.PersistentFlags().Lookup("min_play_ms"))

	rootCmd.PersistentFlags().StringVar(&logLevel, "log_level", "warn", "Log level: debug, info, warn or error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))

	rootCmd.PersistentFlags().StringVar(&logFile, "log_file", "", "Also write JSON logs to this file, rotated")
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log_file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".spotify-history-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-history-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// session holds what one invocation needs to load archives: the loader and
// the in-memory dataset cache behind it.
type session struct {
	loader *history.Loader
	cache  *store.Store
	logger *zap.Logger
}

func newSession() (*session, error) {
	logger, err := logging.New(logging.Config{
		Level:      viper.GetString("log_level"),
		File:       viper.GetString("log_file"),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}

	cache, err := store.New(store.InMemory)
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}

	loader := history.NewLoader(afero.NewOsFs(), cache, history.LoaderConfig{
		WorkDir:   viper.GetString("work_dir"),
		MinPlayMs: viper.GetInt64("min_play_ms"),
	}, logger)

	return &session{loader: loader, cache: cache, logger: logger}, nil
}

func (s *session) Close() error {
	s.logger.Sync()
	return s.cache.Close()
}

func readArchive(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", history.ErrInvalidArchive, err)
	}
	return data, nil
}

// loadSongs reads the archive at path and returns its song plays.
func loadSongs(ctx context.Context, path string) ([]history.Play, error) {
	s, err := newSession()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return s.loadSongs(ctx, path)
}

// loadSongs re-reads path on every call; an unchanged archive is served from
// the session cache.
func (s *session) loadSongs(ctx context.Context, path string) ([]history.Play, error) {
	data, err := readArchive(path)
	if err != nil {
		return nil, err
	}

	plays, err := s.loader.Load(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return analysis.SongsOnly(plays), nil
}

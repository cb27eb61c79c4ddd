/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spond-community/spond-go/internal/appconfig"
	"github.com/spond-community/spond-go/spond"
)

var (
	logLevel   string
	configPath string

	appCfg *appconfig.Config
	client *spond.Client
)

var rootCmd = &cobra.Command{
	Use:   "spond",
	Short: "Spond API client",
	Long:  `spond is a CLI for the Spond group-organization service: groups, members, events, messaging and attendance export.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"path to the config file")
}

// commonSetUp initialises logging, loads the config and builds the
// client every subcommand uses.
func commonSetUp() {
	setLogging(logLevel)

	var err error
	appCfg, err = appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var opts []spond.Option
	if appCfg.Spond.APIURL != "" {
		opts = append(opts, spond.WithAPIURL(appCfg.Spond.APIURL))
	}
	client = spond.NewClient(appCfg.Spond.Email, appCfg.Spond.Password, opts...)
}

// cmdContext returns the context subcommands run their calls under,
// with the global logger attached.
func cmdContext() context.Context {
	return log.Logger.WithContext(context.Background())
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// printJSON writes a value to stdout as indented JSON.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode output")
	}
	fmt.Println(string(out))
}

// printRaw writes a raw JSON payload to stdout, re-indented when
// possible.
func printRaw(raw json.RawMessage) {
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		fmt.Println(string(raw))
		return
	}
	printJSON(buf)
}

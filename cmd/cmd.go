package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anchore/kubeview-client/internal/config"
	"github.com/anchore/kubeview-client/internal/logger"
	"github.com/anchore/kubeview-client/internal/util"
	"github.com/anchore/kubeview-client/pkg"
)

var (
	appConfig   *config.Application
	log         *logrus.Logger
	cliOnlyOpts config.CliOnlyOptions
)

func init() {
	setGlobalCliOptions()

	cobra.OnInitialize(
		InitAppConfig,
		initLogging,
		logAppConfig,
	)
}

func setGlobalCliOptions() {
	// setup global CLI options (available on all CLI commands)
	rootCmd.PersistentFlags().StringVarP(&cliOnlyOpts.ConfigPath, "config", "c", "", "application config file")

	flag := "quiet"
	rootCmd.PersistentFlags().BoolP(
		flag, "q", false,
		"suppress all logging output",
	)
	bindFlag(rootCmd, flag, flag)

	rootCmd.PersistentFlags().CountVarP(&cliOnlyOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")

	rootCmd.PersistentFlags().StringP(
		"output", "o", "table",
		"report output formatter, options=[json table]",
	)
	bindFlag(rootCmd, "output", "output")

	rootCmd.PersistentFlags().String(
		"mode", "adhoc",
		"execution mode, options=[adhoc periodic]",
	)
	bindFlag(rootCmd, "mode", "mode")

	rootCmd.PersistentFlags().Int(
		"polling-interval-seconds", 30,
		"seconds between namespace fetches in periodic mode",
	)
	bindFlag(rootCmd, "polling-interval-seconds", "polling-interval-seconds")
}

// bindFlag ties a persistent flag of cmd to a viper key, exiting when that is not possible
func bindFlag(cmd *cobra.Command, flag, key string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		fmt.Printf("unable to bind flag '%s': %+v", flag, err)
		os.Exit(1)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func InitAppConfig() {
	cfg, err := config.LoadConfigFromFile(viper.GetViper(), &cliOnlyOpts)
	if err != nil {
		fmt.Printf("failed to load application config: \n\t%+v\n", err)
		os.Exit(1)
	}
	appConfig = cfg
}

func GetAppConfig() *config.Application {
	return appConfig
}

func initLogging() {
	cfg := logger.LogrusConfig{
		EnableConsole: (appConfig.Log.FileLocation == "" || appConfig.CliOptions.Verbosity > 0) && !appConfig.Quiet,
		EnableFile:    appConfig.Log.FileLocation != "",
		Level:         appConfig.Log.LevelOpt,
		Structured:    appConfig.Log.Structured,
		FileLocation:  appConfig.Log.FileLocation,
	}

	logWrapper := logger.NewLogrusLogger(cfg)
	log = logWrapper.Logger
	pkg.SetLogger(logWrapper)
}

func logAppConfig() {
	log.Debugf("Application config:\n%s", util.ObfuscateSensitiveString(appConfig.String()))
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hance08/bankcore/cmd/account"
	"github.com/hance08/bankcore/cmd/journal"
	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/config"
	"github.com/hance08/bankcore/internal/constants"
	"github.com/hance08/bankcore/internal/errhandler"
	"github.com/hance08/bankcore/internal/ui/prompts"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// filled in by PersistentPreRunE once flags are parsed
	application := &app.App{}
	cleanup := func() {}

	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "bankcore is a crash-safe transfer engine for a single-currency bank",
		Long: `bankcore applies transfer requests between accounts as a debit and a
credit, logging every balance change before it is made. After a crash the
next run replays the log, finishes interrupted transfers and skips the ones
already done.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			created, err := initConfig()
			if err != nil {
				return err
			}
			if created && isInteractive() {
				if err := initWizard(); err != nil {
					return err
				}
			}

			built, clean, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			*application = *built
			cleanup = clean
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(NewRunCmd(application))
	rootCmd.AddCommand(NewRecoverCmd(application))
	rootCmd.AddCommand(NewInfoCmd(application))
	rootCmd.AddCommand(account.NewAccountCmd(application))
	rootCmd.AddCommand(journal.NewLogCmd(application))

	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		errhandler.HandleError(err)
		os.Exit(1)
	}
}

// initConfig loads the config file, creating it with defaults on first use.
// It reports whether the file was created by this call.
func initConfig() (bool, error) {
	var created bool

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return false, fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName(constants.ConfigName)
		viper.SetConfigType(constants.ConfigType)

		if created, err = createDefaultConfig(appDir); err != nil {
			return false, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return false, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return false, fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return created, nil
}

func setDefaults() {
	d := config.NewDefault()
	viper.SetDefault("database.path", d.Database.Path)
	viper.SetDefault("log.driver", d.Log.Driver)
	viper.SetDefault("log.path", d.Log.Path)
	viper.SetDefault("requests.path", d.Requests.Path)
	viper.SetDefault("workers.count", d.Workers.Count)
	viper.SetDefault("workers.concurrent", d.Workers.Concurrent)
	viper.SetDefault("metrics.namespace", d.Metrics.Namespace)
	viper.SetDefault("metrics.textfile", d.Metrics.Textfile)
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
}

func createDefaultConfig(appDir string) (bool, error) {
	setDefaults()

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, constants.ConfigName+"."+constants.ConfigType)

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

func initWizard() error {
	settings, err := prompts.PromptInitSettings(prompts.InitSettings{
		LogDriver: cfg.Log.Driver,
		Workers:   cfg.Workers.Count,
	})
	if err != nil {
		return err
	}

	viper.Set("log.driver", settings.LogDriver)
	viper.Set("workers.count", settings.Workers)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	cfg.Log.Driver = settings.LogDriver
	cfg.Workers.Count = settings.Workers

	pterm.Success.Printf("Configuration saved. Log driver: %s, workers: %d\n", settings.LogDriver, settings.Workers)

	return nil
}

func isInteractive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

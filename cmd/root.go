package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"matchbook/internal/app"
	"matchbook/internal/config"
	"matchbook/internal/log"
	"matchbook/internal/model"
	"matchbook/internal/storage"
	"matchbook/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version  = "dev"
	cfgFile  string
	dataFile string
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:     "matchbook",
	Short:   "A terminal ui for managing property listings and buyers",
	Long:    `A terminal user interface for keeping a book of property listings, buyers and their preferences, with tag and price-range based matching between the two.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/matchbook/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "",
		"path to the record book JSON file")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable automatic reload when the data file changes on disk")

	_ = viper.BindPFlag("data_file", rootCmd.PersistentFlags().Lookup("data"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_file", defaults.DataFile)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.vim_mode", defaults.UI.VimMode)
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .matchbook/config.yaml (current directory)
		// 2. ~/.config/matchbook/config.yaml (user config)
		if _, err := os.Stat(".matchbook/config.yaml"); err == nil {
			viper.SetConfigFile(".matchbook/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "matchbook"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "matchbook", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}

	if cfg.Logging.Enabled {
		cleanup, err := log.InitWithTeaLog(cfg.Logging.File, "matchbook")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		if level, err := log.ParseLevel(cfg.Logging.Level); err == nil {
			log.SetMinLevel(level)
		}
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:    cfg.Tracing.Enabled,
		Exporter:   cfg.Tracing.Exporter,
		FilePath:   cfg.Tracing.FilePath,
		SampleRate: cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	store := storage.New(cfg.DataFile)
	m, err := loadBook(store)
	if err != nil {
		return err
	}

	configFilePath := viper.ConfigFileUsed()

	appModel := app.New(m, store, cfg, provider, configFilePath)
	p := tea.NewProgram(
		appModel,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()

	if am, ok := finalModel.(app.Model); ok {
		am.Shutdown()
	} else {
		appModel.Shutdown()
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// loadBook reads the record book from disk, starting empty when the
// data file does not exist yet.
func loadBook(store *storage.Store) (*model.Model, error) {
	if !store.Exists() {
		log.Info(log.CatStore, "data file not found, starting with an empty book", "path", store.Path())
		return model.New(), nil
	}
	m, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading data file %s: %w", store.Path(), err)
	}
	return m, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

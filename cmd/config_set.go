package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"matchbook/internal/config"
)

var configSetCmd = &cobra.Command{
	Use:   "config:set <key> <value>",
	Short: "Persist a setting in the config file",
	Long: `Persist a setting in the config file, keeping existing comments.

Supported keys:
  data_file    path to the record book JSON file
  auto_reload  true/false, reload when the data file changes on disk

Examples:
  matchbook config:set data_file ~/records/book.json
  matchbook config:set auto_reload false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("no config file in use and no home directory: %w", err)
			}
			path = filepath.Join(home, ".config", "matchbook", "config.yaml")
		}

		key, value := args[0], args[1]
		switch key {
		case "data_file":
			if err := config.SaveDataFile(path, value); err != nil {
				return err
			}
		case "auto_reload":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("auto_reload wants true or false, got %q", value)
			}
			if err := config.SaveAutoReload(path, enabled); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported key %q (data_file, auto_reload)", key)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configSetCmd)
}

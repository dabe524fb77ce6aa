package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# voice: friendly name of the default voice
voice: "denise"
# rate: speaking rate adjustment, signed percentage
rate: "+0%"
# volume: volume adjustment, signed percentage
volume: "+0%"
# output_dir: where generated audio files land
output_dir: "samples"
# auto_play: play audio right after generating it
auto_play: true
# cache: reuse previously generated audio for identical requests
cache: true

engine:
  # binary: name or path of the edge-tts executable
  binary: "edge-tts"
  # timeout: per-attempt synthesis timeout
  timeout: "30s"
  # max_attempts: synthesis retries before giving up
  max_attempts: 3
  # requests_per_minute: client-side rate limit
  requests_per_minute: 50
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the lafrance config file",
	Long:    paragraph(fmt.Sprintf("\n%s the lafrance config file in your favorite $EDITOR.", keyword("Edit"))),
	Example: paragraph("lafrance config\n# Set a default voice...\nlafrance"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("LaFrance", configFile)
		if err != nil {
			return err
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return err
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
	}
	if ext := strings.ToLower(filepath.Ext(configFile)); ext != ".yaml" && ext != ".yml" {
		return errors.New("configuration file must end in .yaml or .yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o644); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}

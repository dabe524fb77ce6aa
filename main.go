// Package main provides the entry point for the lafrance CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dgnsrekt/lafrance/internal/audio"
	"github.com/dgnsrekt/lafrance/internal/repl"
	"github.com/dgnsrekt/lafrance/internal/tts"
	"github.com/dgnsrekt/lafrance/internal/tts/engines"
	"github.com/dgnsrekt/lafrance/internal/voices"
	"github.com/dgnsrekt/lafrance/utils"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	voiceName  string
	rateValue  string
	volume     string
	outputDir  string
	autoPlay   bool
	useCache   bool

	rootCmd = &cobra.Command{
		Use:   "lafrance [TEXT...]",
		Short: "French text-to-speech on the CLI, with caching",
		Long: paragraph(
			fmt.Sprintf("\nTurn French text into %s. Repeated sentences replay from a local cache instead of hitting the synthesis service again.", keyword("speech")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

// validateOptions resolves the effective settings from Viper and checks
// them before any command runs.
func validateOptions(*cobra.Command) error {
	voiceName = viper.GetString("voice")
	rateValue = viper.GetString("rate")
	volume = viper.GetString("volume")
	outputDir = utils.ExpandPath(viper.GetString("output_dir"))
	autoPlay = viper.GetBool("auto_play")
	useCache = viper.GetBool("cache")

	if err := tts.ValidateAdjustment(rateValue); err != nil {
		return fmt.Errorf("rate: %w", err)
	}
	if err := tts.ValidateAdjustment(volume); err != nil {
		return fmt.Errorf("volume: %w", err)
	}
	if _, ok := voices.Resolve(voiceName); !ok {
		// Unknown voices fall back to the default rather than failing.
		log.Debug("unknown voice, falling back", "voice", voiceName, "default", voices.DefaultName)
	}
	return nil
}

// newSession builds a synthesis session for the given friendly voice
// name using the configured engine and output directory.
func newSession(voice string) (*tts.Session, error) {
	engine := engines.NewEdge(engines.EdgeConfig{
		Binary:            viper.GetString("engine.binary"),
		AttemptTimeout:    viper.GetDuration("engine.timeout"),
		MaxAttempts:       viper.GetInt("engine.max_attempts"),
		RequestsPerMinute: viper.GetInt("engine.requests_per_minute"),
	})
	if err := engine.Validate(); err != nil {
		return nil, err
	}

	return tts.NewSession(engine, audio.NewOtoPlayer(), tts.Config{
		Voice:     voice,
		Rate:      rateValue,
		Volume:    volume,
		OutputDir: outputDir,
		AutoPlay:  autoPlay,
		UseCache:  useCache,
	})
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(cmd *cobra.Command, args []string) error {
	// If stdin is a pipe, speak what it carries.
	if yes, err := stdinIsPipe(); err != nil {
		return err
	} else if yes {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("unable to read stdin: %w", err)
		}
		return speakOnce(cmd.Context(), voiceName, strings.TrimSpace(string(b)))
	}

	// No arguments on a terminal means interactive mode.
	if len(args) == 0 {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}
		return runInteractive(cmd.Context())
	}

	return speakOnce(cmd.Context(), voiceName, strings.Join(args, " "))
}

// speakOnce runs a single synthesis with progress output.
func speakOnce(ctx context.Context, voice, text string) error {
	session, err := newSession(voice)
	if err != nil {
		return err
	}
	_, err = session.Speak(ctx, text, tts.Options{Verbose: true})
	return err
}

// runInteractive starts the read-eval-print loop. An interrupt exits
// the loop cleanly, flushing input history on the way out.
func runInteractive(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := newSession(voiceName)
	if err != nil {
		return err
	}

	cfg, err := env.ParseAs[repl.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}

	history := repl.LoadHistory(cfg.HistoryFile, cfg.HistorySize)
	return repl.New(session, history, cfg).Run(ctx)
}

var quickCmd = &cobra.Command{
	Use:     "quick <text> [voice]",
	Short:   "Speak one sentence and exit",
	Example: paragraph("lafrance quick \"Bonjour Madame\"\nlafrance quick \"Bonjour Madame\" henri"),
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		voice := voiceName
		if len(args) == 2 {
			voice = args[1]
		}
		return speakOnce(cmd.Context(), voice, args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available French voices",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		fmt.Print(repl.VoiceList())
		return nil
	},
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVarP(&voiceName, "voice", "V", voices.DefaultName, fmt.Sprintf("voice name (%s)", strings.Join(voices.Names(), "/")))
	rootCmd.PersistentFlags().StringVarP(&rateValue, "rate", "r", "+0%", "speaking rate adjustment, e.g. -25%")
	rootCmd.PersistentFlags().StringVar(&volume, "volume", "+0%", "volume adjustment, e.g. +10%")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "samples", "directory for generated audio")
	rootCmd.PersistentFlags().BoolVarP(&autoPlay, "play", "p", true, "play generated audio")
	rootCmd.PersistentFlags().BoolVar(&useCache, "cache", true, "reuse previously generated audio")

	// Config bindings
	_ = viper.BindPFlag("voice", rootCmd.PersistentFlags().Lookup("voice"))
	_ = viper.BindPFlag("rate", rootCmd.PersistentFlags().Lookup("rate"))
	_ = viper.BindPFlag("volume", rootCmd.PersistentFlags().Lookup("volume"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("auto_play", rootCmd.PersistentFlags().Lookup("play"))
	_ = viper.BindPFlag("cache", rootCmd.PersistentFlags().Lookup("cache"))

	viper.SetDefault("voice", voices.DefaultName)
	viper.SetDefault("rate", "+0%")
	viper.SetDefault("volume", "+0%")
	viper.SetDefault("output_dir", "samples")
	viper.SetDefault("auto_play", true)
	viper.SetDefault("cache", true)

	// Engine defaults
	viper.SetDefault("engine.binary", "edge-tts")
	viper.SetDefault("engine.timeout", "30s")
	viper.SetDefault("engine.max_attempts", 3)
	viper.SetDefault("engine.requests_per_minute", 50)

	rootCmd.AddCommand(quickCmd, demoCmd, listCmd, cacheCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "lafrance")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find the configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "lafrance")}, dirs...)
	}

	if c := os.Getenv("LAFRANCE_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("lafrance")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("lafrance")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "lafrance.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"matrixlens/internal/catalog"
	"matrixlens/internal/config"
	"matrixlens/internal/matrix"
)

var (
	// Global flags
	verbose     bool
	cfgPath     string
	dataDir     string
	versionName string
	noWatch     bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "matrixlens",
	Short: "matrixlens - 课程与毕业要求关联矩阵速查",
	Long: `matrixlens is a lookup tool for course/graduation-requirement
support matrices.

It loads per-version matrix CSVs plus the program YAML carrying the
indicator descriptions, and answers three questions: which indicators a
course supports, which courses support an indicator, and how a course's
support changed between program versions.

Run without arguments to start the interactive terminal interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive interface owns the terminal; zap output
		// would corrupt it, so it runs on a nop logger.
		if cmd.Use == "matrixlens" && cmd.CalledAs() == "matrixlens" {
			logger = zap.NewNop()
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory override")
	rootCmd.PersistentFlags().StringVarP(&versionName, "version", "V", "", "Matrix version (default: configured default)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable live reload on data file changes")

	courseCmd.Flags().StringVar(&exportPath, "export", "", "Write the result as a UTF-8 BOM CSV")
	outcomeCmd.Flags().StringVar(&exportPath, "export", "", "Write the result as a UTF-8 BOM CSV")
	compareCmd.Flags().StringVar(&compareFrom, "from", "", "Old version (default: last configured)")
	compareCmd.Flags().StringVar(&compareTo, "to", "", "New version (default: first configured)")

	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(outcomeCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flag overrides.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if versionName != "" {
		cfg.DefaultVersion = versionName
	}
	return cfg, nil
}

// buildCatalog wires the shared accessor and version catalog.
func buildCatalog() (*config.Config, *catalog.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	acc := matrix.NewAccessor(logger)
	return cfg, catalog.New(cfg, acc, logger), nil
}

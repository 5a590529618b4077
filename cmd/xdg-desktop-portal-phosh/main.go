// xdg-desktop-portal-phosh is the Phosh backend for xdg-desktop-portal. It
// bridges two worlds: the concurrent D-Bus frontend that receives portal
// requests, and the single-threaded dispatch loop that owns the interactive
// dialogs answering them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/config"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/dispatch"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/frontend"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/requester"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/responder"
)

var version = "0.1.0"

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "xdg-desktop-portal-phosh",
	Short:   "Phosh backend for xdg-desktop-portal",
	Version: version,
	Long: `xdg-desktop-portal-phosh implements the org.freedesktop.impl.portal
interfaces (Account, AppChooser, FileChooser, Wallpaper) for the Phosh shell.

Portal requests arrive over D-Bus, are queued onto a bounded channel, and a
single dispatch loop presents one dialog per request to gather the answer.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
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
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/xdg-desktop-portal-phosh/config.yaml"
	}
	return "config.yaml"
}

func serve() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	applyLogConfig(cfg)

	loop := dispatch.New(responder.DefaultTable(cfg, logger), cfg.MessageBuffer, logger)
	send, closed := loop.Sender(), loop.Closed()

	adapters := frontend.Adapters{}
	if cfg.Interfaces.Account {
		logger.Debug("adding interface", zap.String("interface", "Account"))
		adapters.Account = requester.NewAccount(send, closed, logger)
	}
	if cfg.Interfaces.AppChooser {
		logger.Debug("adding interface", zap.String("interface", "AppChooser"))
		adapters.AppChooser = requester.NewAppChooser(send, closed, logger)
	}
	if cfg.Interfaces.FileChooser {
		logger.Debug("adding interface", zap.String("interface", "FileChooser"))
		adapters.FileChooser = requester.NewFileChooser(send, closed, logger)
	}
	if cfg.Interfaces.Wallpaper {
		logger.Debug("adding interface", zap.String("interface", "Wallpaper"))
		adapters.Wallpaper = requester.NewWallpaper(send, closed, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return frontend.New(cfg, adapters, logger).Run(ctx)
	})

	// The dispatch loop is the presentation side; it runs on the main
	// goroutine until shutdown.
	loopErr := loop.Run(ctx)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if loopErr != nil && !errors.Is(loopErr, context.Canceled) {
		return loopErr
	}
	return nil
}

// applyLogConfig rebuilds the logger with the configured level and format.
func applyLogConfig(cfg *config.Config) {
	level := zapcore.InfoLevel
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = "console"
	if cfg.Logging.JSON {
		zcfg.Encoding = "json"
	}
	if rebuilt, err := zcfg.Build(); err == nil {
		logger = rebuilt
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

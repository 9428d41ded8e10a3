package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/firefly-engineering/devtriage/internal/app"
	"github.com/firefly-engineering/devtriage/internal/config"
	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/logging"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)

// loadApp points the default App at the requested root and loads its
// configuration.
func loadApp() error {
	a := app.Default

	if rootDir != "" {
		abs, err := filepath.Abs(rootDir)
		if err != nil {
			return errors.ValidationError(fmt.Sprintf("invalid root %q: %v", rootDir, err))
		}
		if !a.FS.IsDir(abs) {
			return errors.ValidationError(fmt.Sprintf("repository root %s is not a directory", abs))
		}
		a.Root = abs
	}

	cfg, err := config.Load(a.FS, a.Root, configPath)
	if err != nil {
		return err
	}
	a.Config = cfg

	logging.Debug("application ready", "root", a.Root, "config", cfg.Source)
	return nil
}

// printf writes plain user-facing output.
func printf(format string, args ...any) {
	fmt.Fprintf(logging.UserOut(), format, args...)
}

// Package app provides the application context for devtriage.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    FS       system.FileSystem      // File access
//	    Executor system.CommandExecutor // Process execution
//	    Root     string                 // Repository root
//	    Config   *config.Config         // Project configuration
//	    Backend  workspace.Backend      // Optional pinned VCS backend
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New(app.WithRoot(root), app.WithConfig(cfg))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(mockFS),
//	    app.WithExecutor(mockExec),
//	    app.WithRoot("/repo"),
//	)
//
// # Available Options
//
//	WithFS(fs)            // Custom file system
//	WithExecutor(exec)    // Custom command executor
//	WithRoot(path)        // Repository root
//	WithConfig(cfg)       // Project configuration
//	WithBackend(backend)  // Pin the version-control backend
//	WithClock(now)        // Clock for timestamped output directories
package app

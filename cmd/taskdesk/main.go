package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"taskdesk/internal/config"
	"taskdesk/internal/models"
	"taskdesk/internal/service"
	"taskdesk/internal/session"
	"taskdesk/internal/store"
	"taskdesk/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("taskdesk %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		if dbPath, err = store.DefaultPath(); err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
			os.Exit(1)
		}
	}

	logger, logFile, err := newLogger(cfg, dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	st, err := store.Open(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	// Explicit constructor composition: store, then services, then the
	// session and UI.
	hasher := service.NewBcryptHasher()
	userSvc := service.NewUserService(st, hasher)
	taskSvc := service.NewTaskService(st)
	authSvc := service.NewAuthService(st, hasher, logger)

	if err := seedAdmin(context.Background(), st, userSvc, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding initial admin: %v\n", err)
		os.Exit(1)
	}

	sess := session.New()
	app := ui.NewApp(authSvc, userSvc, taskSvc, sess, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to a file since the TUI owns the terminal.
func newLogger(cfg *config.Config, dbPath string) (zerolog.Logger, *os.File, error) {
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(dbPath), "taskdesk.log")
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f, nil
}

// seedAdmin registers a default admin account on an empty database so a
// fresh install has a way in.
func seedAdmin(ctx context.Context, st *store.Store, users *service.UserService, log zerolog.Logger) error {
	count, err := st.UserCount(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := users.Create(ctx, "Administrator", "admin", "admin", models.RoleAdmin); err != nil {
		return err
	}

	log.Warn().Msg("seeded default admin account (admin/admin); change its password")
	return nil
}

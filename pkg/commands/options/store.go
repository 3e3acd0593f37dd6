package options

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/logger"
	"tableflip.dev/agenda/pkg/store"
)

// StoreOptions are the persistent flags that locate and open the agenda.
type StoreOptions struct {
	Path    string
	Owner   string
	Locale  string
	Recover bool
	Debug   bool
}

func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.Path, "db", "",
		"Storage directory (default from .agenda.yaml, AGENDA_PATH or ~/.agenda.db).")
	flags.StringVar(&o.Owner, "owner", "",
		"Owner id stamped on new items.")
	flags.StringVar(&o.Locale, "locale", "",
		"Message language: en or fr.")
	flags.BoolVar(&o.Recover, "recover", false,
		"Move unreadable stored items aside and start empty instead of failing.")
	flags.BoolVar(&o.Debug, "debug", false,
		"Enable debug logging.")
}

// Config loads the file and environment config, then applies flags.
func (o *StoreOptions) Config() (*store.FileConfig, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.Path != "" {
		cfg.Path = o.Path
	}
	if o.Owner != "" {
		cfg.User = o.Owner
	}
	if o.Locale != "" {
		cfg.Lang = o.Locale
	}
	if o.Recover {
		cfg.Recover = true
	}
	return cfg, nil
}

// Logger builds the console logger, or the JSON one for servers.
func (o *StoreOptions) Logger(server bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if server {
		l, err = logger.NewServer(o.Debug)
	} else {
		l, err = logger.New(o.Debug)
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Service opens the store and the controller on top of it.
func (o *StoreOptions) Service(ctx context.Context, log *zap.Logger) (*app.Service, *store.FileConfig, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, nil, err
	}
	events, err := store.Load(ctx, cfg, log)
	if err != nil {
		return nil, cfg, err
	}
	svc, err := app.New(ctx, events, app.NewReducer(cfg.Owner(), cfg.Locale()), app.Options{
		DarkDefault: DarkBackground(),
		Logger:      log,
	})
	if err != nil {
		return nil, cfg, err
	}
	return svc, cfg, nil
}

// DarkBackground guesses the terminal background when stdout is a terminal.
func DarkBackground() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.HasDarkBackground()
}

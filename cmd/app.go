package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/harrisonrobin/dailies/pkg/config"
	"github.com/harrisonrobin/dailies/pkg/habitica"
	"github.com/harrisonrobin/dailies/pkg/lifecycle"
	"github.com/harrisonrobin/dailies/pkg/logger"
	"github.com/harrisonrobin/dailies/pkg/notion"
	"github.com/harrisonrobin/dailies/pkg/planner"
	"github.com/harrisonrobin/dailies/pkg/prompt"
	"github.com/harrisonrobin/dailies/pkg/schedule"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Seams replaced by tests.
var (
	fs         afero.Fs        = afero.NewOsFs()
	prompter   prompt.Prompter = prompt.Terminal{}
	httpClient *http.Client
	dotEnv     = true
)

type app struct {
	cfg   *config.Config
	svc   *lifecycle.Service
	clock *schedule.Normalizer
	log   *slog.Logger
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if dotEnv {
		if err := config.LoadDotEnv(); err != nil {
			return nil, err
		}
	}
	v := viper.New()
	if f := cmd.Flag("timezone"); f != nil {
		_ = v.BindPFlag("timezone", f)
	}
	return config.Load(v, fs, cfgFile)
}

// newApp wires the flows for one invocation.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fatal("Configuration is incomplete: "+err.Error(), err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.InitWriter(cmd.ErrOrStderr(), level, cfg.LogJSON)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clock := schedule.New(nil, loc)

	tasks := habitica.NewClient(cfg.Habitica.BaseURL, cfg.Habitica.UserID, cfg.Habitica.APIKey, httpClient)
	notionClient := notion.NewClient(ctx, cfg.Notion.BaseURL, cfg.Notion.Version, cfg.Notion.Token, cfg.Notion.DatabaseID, httpClient)
	ledger := notion.NewLedger(notionClient, cfg.Notion.StatsPageID, log)

	svc := lifecycle.NewService(tasks, ledger, clock, planner.New(), log)
	return &app{cfg: cfg, svc: svc, clock: clock, log: log}, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/accounts"
	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/github"
	"taskdeck/internal/google/calendar"
	"taskdeck/internal/google/gmail"
	"taskdeck/internal/google/tasks"
	"taskdeck/internal/logger"
	"taskdeck/internal/paths"
	"taskdeck/internal/source"
	"taskdeck/internal/timeparse"
)

const fetchTimeout = 45 * time.Second

type App struct {
	Config          *config.Config
	ConfigPath      string
	SnapshotPath    string
	CredentialsPath string
	TokenPath       string
	Location        *time.Location

	// Google-backed sources and clients are nil until the account is
	// connected.
	Tasks          *source.TaskLists
	Calendar       *source.Calendar
	GoogleTasks    *tasks.Client
	GoogleCalendar *calendar.Client
	GitHub         *github.Client

	Aggregator *source.Aggregator
	Accounts   accounts.Checker
	// GoogleErr explains why the Google sources are missing.
	GoogleErr error
}

// Now returns the current time in the app's configured location.
// Always use this instead of caching time at startup.
func (a *App) Now() time.Time {
	return time.Now().In(a.Location)
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taskdeck",
		Short:         "Daily overview of tasks, pull requests, events and mail",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logger.SetDebug(debug)
			logPath, err := paths.LogPath()
			if err != nil {
				return nil
			}
			if err := logger.Init(logPath); err != nil {
				// Logging is best effort; the app works without it.
				return nil
			}
			logger.Debug("%s started, logging to %s", cmd.CommandPath(), logger.Path())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			return startTUI(app)
		},
	}
	cmd.PersistentFlags().String("config", "", "Path to config.json (defaults to ~/.config/taskdeck/config.json)")
	cmd.PersistentFlags().String("credentials", "", "Path to OAuth credentials.json (defaults to ~/.config/taskdeck/credentials.json)")
	cmd.PersistentFlags().Bool("debug", false, "Write debug logs")

	cmd.AddCommand(newOverviewCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newAccountsCmd())
	cmd.AddCommand(newSetupCmd())

	return cmd
}

func initApp(cmd *cobra.Command) (*App, error) {
	cfgPath, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, err
	}
	loc, err := timeparse.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	credPath, _ := cmd.Flags().GetString("credentials")
	if credPath == "" {
		credPath, err = paths.CredentialsPath()
		if err != nil {
			return nil, err
		}
	}
	tokenPath, err := paths.TokenPath()
	if err != nil {
		return nil, err
	}
	snapshotPath, err := paths.SnapshotPath()
	if err != nil {
		return nil, err
	}
	gh := github.New(github.OSExecutor{}, 30)
	app := &App{
		Config:          cfg,
		ConfigPath:      cfgPath,
		SnapshotPath:    snapshotPath,
		CredentialsPath: credPath,
		TokenPath:       tokenPath,
		Location:        loc,
		GitHub:          gh,
		Accounts:        accounts.Checker{TokenPath: tokenPath, GitHub: gh},
	}
	app.connectSources(cmd.Context())
	return app, nil
}

// connectSources (re)builds the sources from the stored credentials. A
// missing Google connection is not fatal: GitHub lists still load.
func (a *App) connectSources(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.WithComponent("cli")
	a.Tasks, a.Calendar, a.GoogleErr = nil, nil, nil
	a.GoogleTasks, a.GoogleCalendar = nil, nil

	var sources []source.Source
	httpClient, err := auth.Client(ctx, a.CredentialsPath, a.TokenPath)
	if err != nil {
		a.GoogleErr = err
		if !errors.Is(err, auth.ErrNotConnected) {
			log.Warn("google auth failed", "error", err)
		}
	} else {
		sources = append(sources, a.googleSources(ctx, httpClient)...)
	}
	if len(a.Config.GitHubQueries) > 0 {
		queries := make([]source.PullRequestQuery, 0, len(a.Config.GitHubQueries))
		for _, q := range a.Config.GitHubQueries {
			queries = append(queries, source.PullRequestQuery{Name: q.Name, Search: q.Search})
		}
		sources = append(sources, source.NewPullRequests(a.GitHub, queries))
	}
	a.Aggregator = source.NewAggregator(fetchTimeout, sources...)
	log.Debug("sources ready", "count", len(sources), "google", a.GoogleErr == nil)
}

func (a *App) googleSources(ctx context.Context, httpClient *http.Client) []source.Source {
	log := logger.WithComponent("cli")
	var out []source.Source
	tasksClient, err := tasks.New(ctx, httpClient)
	if err != nil {
		a.GoogleErr = fmt.Errorf("google tasks: %w", err)
		log.Warn("tasks client failed", "error", err)
		return nil
	}
	lists := make([]source.TaskList, 0, len(a.Config.Lists))
	for _, name := range a.Config.ListNames() {
		lists = append(lists, source.TaskList{Name: name, ID: a.Config.Lists[name]})
	}
	a.GoogleTasks = tasksClient
	a.Tasks = source.NewTaskLists(tasksClient, lists, a.Location)
	out = append(out, a.Tasks)

	calendarClient, err := calendar.New(ctx, httpClient)
	if err != nil {
		log.Warn("calendar client failed", "error", err)
	} else {
		a.GoogleCalendar = calendarClient
		a.Calendar = source.NewCalendar(calendarClient, a.Config.ViewCalendars, a.Location, a.Now)
		out = append(out, a.Calendar)
	}

	if a.Config.GmailQuery != "" {
		gmailClient, err := gmail.New(ctx, httpClient)
		if err != nil {
			log.Warn("gmail client failed", "error", err)
		} else {
			out = append(out, source.NewGmail(gmailClient, a.Config.GmailQuery))
		}
	}
	return out
}

// requireGoogle returns a user-facing error when Google is not connected.
func (a *App) requireGoogle() error {
	if a.Tasks != nil {
		return nil
	}
	if errors.Is(a.GoogleErr, auth.ErrNotConnected) || a.GoogleErr == nil {
		return fmt.Errorf("google account not connected: run `taskdeck accounts connect google`")
	}
	return a.GoogleErr
}

func (a *App) SaveConfig() error {
	if a == nil || a.Config == nil || a.ConfigPath == "" {
		return fmt.Errorf("config is not initialized")
	}
	if err := config.Save(a.ConfigPath, a.Config); err != nil {
		return err
	}
	logger.WithComponent("cli").Info("config saved", "path", a.ConfigPath)
	return nil
}

func resolveConfigPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return path, nil
	}
	return paths.ConfigPath()
}

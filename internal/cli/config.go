package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/logger"
	"taskdeck/internal/source"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage local configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigEmptySortCmd())
	cmd.AddCommand(newConfigCalendarsCmd())
	cmd.AddCommand(newConfigCalendarSetCmd())
	cmd.AddCommand(newConfigListsCmd())
	cmd.AddCommand(newConfigGitHubCmd())
	return cmd
}

func loadConfig(cmd *cobra.Command) (string, *config.Config, error) {
	path, err := resolveConfigPath(cmd)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.LoadOrCreate(path)
	return path, cfg, err
}

// updateConfig loads the config, applies fn and saves the result.
func updateConfig(cmd *cobra.Command, fn func(cfg *config.Config) error) (*config.Config, error) {
	path, cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := fn(cfg); err != nil {
		return nil, err
	}
	if err := config.Save(path, cfg); err != nil {
		return nil, err
	}
	logger.WithComponent("config").Info("config saved", "path", path, "command", cmd.Name())
	return cfg, nil
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s", path)
				}
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Printf("Config written: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", path)
			fmt.Printf("%s\n", string(data))
			return nil
		},
	}
	return cmd
}

func parseOnOff(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", value)
	}
}

func newConfigEmptySortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-empty-sort <on|off>",
		Short: "Move empty lists after non-empty ones in the overview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			if _, err := updateConfig(cmd, func(cfg *config.Config) error {
				cfg.Overview.AutomaticEmptySort = on
				return nil
			}); err != nil {
				return err
			}
			fmt.Printf("automatic_empty_sort updated: %t\n", on)
			return nil
		},
	}
	return cmd
}

func newConfigCalendarsCmd() *cobra.Command {
	var showIDs bool
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List available calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			if app.GoogleCalendar == nil {
				return app.requireGoogle()
			}
			items, err := app.GoogleCalendar.ListCalendars(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("(none)")
				return nil
			}
			for _, cal := range items {
				marks := ""
				if cal.Primary {
					marks += " (primary)"
				}
				for _, id := range app.Config.ViewCalendars {
					if id == cal.Id || (id == "primary" && cal.Primary) {
						marks += " " + gray("[shown]")
						break
					}
				}
				if showIDs {
					fmt.Printf("- %s%s\n  id: %s\n", cal.Summary, marks, cal.Id)
				} else {
					fmt.Printf("- %s%s\n", cal.Summary, marks)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show calendar IDs")
	return cmd
}

func newConfigCalendarSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-calendars [calendarID...]",
		Short: "Set the calendars shown in the overview",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := updateConfig(cmd, func(cfg *config.Config) error {
				cfg.ViewCalendars = args
				cfg.CalendarID = args[0]
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Printf("view_calendars updated: %s\n", strings.Join(cfg.ViewCalendars, ", "))
			return nil
		},
	}
	return cmd
}

func newConfigListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage Google Tasks list mappings",
	}
	cmd.AddCommand(newConfigListsListCmd())
	cmd.AddCommand(newConfigListsAddCmd())
	cmd.AddCommand(newConfigListsRemoveCmd())
	cmd.AddCommand(newConfigListsRemoteCmd())
	cmd.AddCommand(newConfigListsCreateCmd())
	return cmd
}

func newConfigListsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List local list mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			for _, name := range cfg.ListNames() {
				id := cfg.Lists[name]
				line := fmt.Sprintf("- %s: %s", name, id)
				if cfg.IsHidden(source.TaskListID(id)) {
					line += " " + gray("(hidden)")
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	return cmd
}

func newConfigListsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name] [listID]",
		Short: "Add a local list mapping",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := updateConfig(cmd, func(cfg *config.Config) error {
				cfg.Lists[args[0]] = args[1]
				return nil
			}); err != nil {
				return err
			}
			fmt.Printf("Added list mapping: %s -> %s\n", args[0], args[1])
			return nil
		},
	}
	return cmd
}

func newConfigListsRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove a local list mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := updateConfig(cmd, func(cfg *config.Config) error {
				id, err := cfg.ListID(args[0])
				if err != nil {
					return err
				}
				delete(cfg.Lists, args[0])
				cfg.SetHidden(source.TaskListID(id), false)
				return nil
			}); err != nil {
				return err
			}
			fmt.Printf("Removed list mapping: %s\n", args[0])
			return nil
		},
	}
	return cmd
}

func newConfigListsRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "List Google Tasks lists from the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			if app.GoogleTasks == nil {
				return app.requireGoogle()
			}
			lists, err := app.GoogleTasks.ListTaskLists(cmd.Context())
			if err != nil {
				return err
			}
			if len(lists) == 0 {
				fmt.Println("(none)")
				return nil
			}
			for _, l := range lists {
				fmt.Printf("- %s\n  id: %s\n", l.Title, l.Id)
			}
			return nil
		},
	}
	return cmd
}

func newConfigListsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a Google Tasks list and add mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			if app.GoogleTasks == nil {
				return app.requireGoogle()
			}
			list, err := app.GoogleTasks.CreateTaskList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.Config.Lists[list.Title] = list.Id
			if err := app.SaveConfig(); err != nil {
				return err
			}
			fmt.Printf("Created list: %s (id: %s)\n", list.Title, list.Id)
			return nil
		},
	}
	return cmd
}

func newConfigGitHubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github",
		Short: "Manage GitHub pull request searches",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(cfg.GitHubQueries) == 0 {
				fmt.Println("(none)")
			}
			for _, q := range cfg.GitHubQueries {
				fmt.Printf("- %s: %s\n", q.Name, q.Search)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add [name] [search]",
		Short: "Add a pull request search (gh search syntax)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := updateConfig(cmd, func(cfg *config.Config) error {
				for _, q := range cfg.GitHubQueries {
					if q.Name == args[0] {
						return fmt.Errorf("search already exists: %s", args[0])
					}
				}
				cfg.GitHubQueries = append(cfg.GitHubQueries, config.GitHubQuery{Name: args[0], Search: args[1]})
				return nil
			}); err != nil {
				return err
			}
			fmt.Printf("Added search: %s\n", args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove [name]",
		Short: "Remove a pull request search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := updateConfig(cmd, func(cfg *config.Config) error {
				kept := cfg.GitHubQueries[:0]
				found := false
				for _, q := range cfg.GitHubQueries {
					if q.Name == args[0] {
						found = true
						continue
					}
					kept = append(kept, q)
				}
				if !found {
					return fmt.Errorf("unknown search: %s", args[0])
				}
				cfg.GitHubQueries = kept
				cfg.SetHidden(source.GitHubListID(args[0]), false)
				return nil
			}); err != nil {
				return err
			}
			fmt.Printf("Removed search: %s\n", args[0])
			return nil
		},
	})
	return cmd
}

package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/google/tasks"
)

type simpleList struct {
	Title string
	ID    string
}

type simpleCalendar struct {
	Title   string
	ID      string
	Primary bool
}

type choiceItem[T any] struct {
	Label string
	Item  T
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Choose the calendars, task lists and inbox shown in the overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			if app.GoogleTasks == nil || app.GoogleCalendar == nil {
				return app.requireGoogle()
			}
			ctx := cmd.Context()
			cfg := app.Config

			printSection("Calendars")
			if err := setupCalendars(ctx, app, cfg); err != nil {
				return err
			}

			printSection("Google Tasks")
			if err := setupLists(ctx, app.GoogleTasks, cfg); err != nil {
				return err
			}

			printSection("Gmail")
			query, err := askLabel("Messages to show (Gmail search, empty to hide)", cfg.GmailQuery, false)
			if err != nil {
				return err
			}
			cfg.GmailQuery = query

			if err := app.SaveConfig(); err != nil {
				return err
			}
			fmt.Printf("\nSetup complete. Config saved to %s\n", app.ConfigPath)
			return nil
		},
	}
	return cmd
}

func setupCalendars(ctx context.Context, app *App, cfg *config.Config) error {
	items, err := app.GoogleCalendar.ListCalendars(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No calendars found.")
		return nil
	}
	calendars := make([]simpleCalendar, 0, len(items))
	for _, cal := range items {
		calendars = append(calendars, simpleCalendar{Title: cal.Summary, ID: cal.Id, Primary: cal.Primary})
	}

	choices := buildCalendarChoices(calendars)
	shown := map[string]bool{}
	for _, id := range cfg.ViewCalendars {
		shown[id] = true
	}
	var defaults []string
	for _, choice := range choices {
		if shown[choice.Item.ID] || (shown["primary"] && choice.Item.Primary) {
			defaults = append(defaults, choice.Label)
		}
	}

	prompt := &survey.MultiSelect{
		Message:  "Calendars to show",
		Options:  labelsFromChoices(choices),
		Default:  defaults,
		PageSize: 12,
	}
	var selected []string
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return err
	}
	ids := make([]string, 0, len(selected))
	for _, label := range selected {
		if choice, ok := findChoice(choices, label); ok {
			ids = append(ids, choice.Item.ID)
		}
	}
	cfg.ViewCalendars = ids
	cfg.CalendarID = ids[0]
	return nil
}

func setupLists(ctx context.Context, client *tasks.Client, cfg *config.Config) error {
	remote, err := client.ListTaskLists(ctx)
	if err != nil {
		return err
	}
	lists := make([]simpleList, 0, len(remote))
	for _, l := range remote {
		lists = append(lists, simpleList{Title: l.Title, ID: l.Id})
	}

	if len(lists) > 0 {
		choices := buildListChoices(lists)
		mapped := map[string]bool{}
		for _, id := range cfg.Lists {
			mapped[id] = true
		}
		var defaults []string
		for _, choice := range choices {
			if mapped[choice.Item.ID] {
				defaults = append(defaults, choice.Label)
			}
		}
		prompt := &survey.MultiSelect{
			Message:  "Task lists to show",
			Options:  labelsFromChoices(choices),
			Default:  defaults,
			PageSize: 12,
		}
		var selected []string
		if err := survey.AskOne(prompt, &selected); err != nil {
			return err
		}
		next := map[string]string{}
		for _, label := range selected {
			choice, ok := findChoice(choices, label)
			if !ok {
				continue
			}
			next[localListName(next, choice.Item.Title)] = choice.Item.ID
		}
		cfg.Lists = next
	}

	for {
		createNew := false
		if err := survey.AskOne(&survey.Confirm{Message: "Create a new Google Tasks list?", Default: len(cfg.Lists) == 0}, &createNew); err != nil {
			return err
		}
		if !createNew {
			break
		}
		name, err := askLabel("New list name", "", true)
		if err != nil {
			return err
		}
		created, err := client.CreateTaskList(ctx, name)
		if err != nil {
			return err
		}
		cfg.Lists[localListName(cfg.Lists, created.Title)] = created.Id
		fmt.Printf("Created list: %s\n", created.Title)
	}
	return nil
}

// localListName returns title, suffixed when another mapping already uses it.
func localListName(existing map[string]string, title string) string {
	name := title
	for i := 2; ; i++ {
		if _, taken := existing[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s (%d)", title, i)
	}
}

// buildChoices labels items for a survey prompt, numbering duplicate titles,
// and sorts them by label.
func buildChoices[T any](items []T, title func(T) string) []choiceItem[T] {
	counts := map[string]int{}
	for _, item := range items {
		counts[title(item)]++
	}
	seen := map[string]int{}
	choices := make([]choiceItem[T], 0, len(items))
	for _, item := range items {
		label := title(item)
		if counts[label] > 1 {
			seen[label]++
			label = fmt.Sprintf("%s (%d)", label, seen[label])
		}
		choices = append(choices, choiceItem[T]{Label: label, Item: item})
	}
	sort.SliceStable(choices, func(i, j int) bool { return choices[i].Label < choices[j].Label })
	return choices
}

func buildListChoices(lists []simpleList) []choiceItem[simpleList] {
	return buildChoices(lists, func(l simpleList) string { return l.Title })
}

func buildCalendarChoices(cals []simpleCalendar) []choiceItem[simpleCalendar] {
	return buildChoices(cals, func(c simpleCalendar) string {
		if c.Primary {
			return c.Title + " (primary)"
		}
		return c.Title
	})
}

func labelsFromChoices[T any](choices []choiceItem[T]) []string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, choice.Label)
	}
	return labels
}

func findChoice[T any](choices []choiceItem[T], label string) (choiceItem[T], bool) {
	for _, choice := range choices {
		if choice.Label == label {
			return choice, true
		}
	}
	var zero choiceItem[T]
	return zero, false
}

func askLabel(message, defaultValue string, required bool) (string, error) {
	var input string
	prompt := &survey.Input{Message: message, Default: defaultValue}
	var opts []survey.AskOpt
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(prompt, &input, opts...); err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func printSection(title string) {
	fmt.Printf("\n\033[1m%s\033[0m\n", title)
}

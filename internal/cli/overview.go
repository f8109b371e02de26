package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/agenda"
	"taskdeck/internal/overview"
	"taskdeck/internal/timeparse"
)

func newOverviewCmd() *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the daily overview and free slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			day, err := parseDay(dateStr, app)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
			defer cancel()

			lists, fetchErr := app.Aggregator.Fetch(ctx)
			lists = overview.Arrange(lists, app.Config.Preferences())

			var events []overview.Event
			var free []agenda.Slot
			if app.Calendar != nil {
				events, err = app.Calendar.Events(ctx, day)
				if err != nil {
					return err
				}
				dayStart, dayEnd, err := agenda.DayBounds(day, app.Config.WorkdayStart, app.Config.WorkdayEnd, app.Location)
				if err != nil {
					return err
				}
				free = agenda.FreeSlots(events, dayStart, dayEnd)
			}
			fmt.Println(renderOverviewText(day, lists, events, free, app.Location))
			if app.GoogleErr != nil {
				fmt.Println()
				fmt.Println(gray(app.requireGoogle().Error()))
			}
			return fetchErr
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Day for events and free slots (e.g. 'today', 'tomorrow', '2026-01-02')")
	return cmd
}

func parseDay(dateStr string, app *App) (time.Time, error) {
	now := app.Now()
	if strings.TrimSpace(dateStr) == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, app.Location), nil
	}
	day, err := timeparse.ParseDate(dateStr, now, app.Location)
	if err != nil {
		return time.Time{}, err
	}
	if day.IsZero() {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	return day, nil
}

func renderOverviewText(day time.Time, lists []overview.List, events []overview.Event, free []agenda.Slot, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Overview for %s\n", day.Format("2006-01-02")))

	if len(lists) == 0 {
		b.WriteString("\n(no lists)\n")
	}
	for _, list := range lists {
		b.WriteString(fmt.Sprintf("\n%s (%d)\n", list.Name, len(list.Items)))
		if list.IsEmpty() {
			b.WriteString("- (none)\n")
			continue
		}
		for _, item := range list.Items {
			b.WriteString(renderItemLine(item, loc))
		}
	}

	if events != nil {
		b.WriteString(fmt.Sprintf("\nEvents on %s:\n", day.Format("Mon Jan 2")))
		if len(events) == 0 {
			b.WriteString("- (none)\n")
		}
		for _, ev := range events {
			b.WriteString(renderEventLine(ev, loc))
		}
		b.WriteString("\nFree slots:\n")
		if len(free) == 0 {
			b.WriteString("- (none)\n")
		}
		for _, slot := range free {
			b.WriteString(fmt.Sprintf("- %s - %s\n", slot.Start.In(loc).Format("15:04"), slot.End.In(loc).Format("15:04")))
		}
	}
	return strings.TrimSpace(b.String())
}

func renderItemLine(item overview.Item, loc *time.Location) string {
	switch item.Kind {
	case overview.KindTask:
		line := "- " + item.Task.Title
		if item.Task.HasDue {
			line += " " + gray("(due "+item.Task.Due.In(loc).Format("Jan 2")+")")
		}
		if n := len(item.Task.Subtasks); n > 0 {
			line += " " + gray(fmt.Sprintf("[%d subtasks]", n))
		}
		return line + "\n"
	case overview.KindPullRequest:
		pr := item.PullRequest
		return fmt.Sprintf("- %s %s\n", pr.Title, gray(fmt.Sprintf("(%s#%d)", pr.Repository, pr.Number)))
	case overview.KindEvent:
		return renderEventLine(*item.Event, loc)
	case overview.KindMessage:
		msg := item.Message
		from := msg.Sender.Name
		if from == "" {
			from = msg.Sender.Email
		}
		return fmt.Sprintf("- %s %s\n", msg.Title, gray("("+from+")"))
	default:
		return "- " + item.Title() + "\n"
	}
}

func renderEventLine(ev overview.Event, loc *time.Location) string {
	if ev.AllDay {
		return fmt.Sprintf("- All-day %s\n", ev.Summary)
	}
	return fmt.Sprintf("- %s - %s %s\n", ev.Start.In(loc).Format("15:04"), ev.End.In(loc).Format("15:04"), ev.Summary)
}

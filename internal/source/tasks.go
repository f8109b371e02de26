package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/tasks/v1"

	"taskdeck/internal/metadata"
	"taskdeck/internal/overview"
)

// TaskService is the slice of the Google Tasks client the task source uses.
type TaskService interface {
	ListTasks(ctx context.Context, listID string, showCompleted bool) ([]*tasks.Task, error)
	GetTask(ctx context.Context, listID, taskID string) (*tasks.Task, error)
	CompleteTask(ctx context.Context, listID, taskID string) (*tasks.Task, error)
	UpdateNotes(ctx context.Context, listID, taskID, notes string) (*tasks.Task, error)
}

// TaskList names one Google tasklist shown in the overview.
type TaskList struct {
	Name string
	ID   string
}

const taskListPrefix = "tasks:"

// TaskListID is the overview list id of a Google tasklist.
func TaskListID(googleID string) string {
	return taskListPrefix + googleID
}

// TaskLists shows each configured Google tasklist as one list of open tasks.
type TaskLists struct {
	svc      TaskService
	lists    []TaskList
	location *time.Location
}

func NewTaskLists(svc TaskService, lists []TaskList, loc *time.Location) *TaskLists {
	if loc == nil {
		loc = time.Local
	}
	return &TaskLists{svc: svc, lists: lists, location: loc}
}

func (s *TaskLists) Name() string { return "Google Tasks" }

func (s *TaskLists) Lists(ctx context.Context) ([]overview.List, error) {
	out := make([]overview.List, 0, len(s.lists))
	for _, list := range s.lists {
		items, err := s.svc.ListTasks(ctx, list.ID, true)
		if err != nil {
			return nil, err
		}
		out = append(out, overview.List{
			ID:    TaskListID(list.ID),
			Name:  list.Name,
			Type:  overview.ListTypeTask,
			Items: buildTaskItems(list.ID, items, s.location),
		})
	}
	return out, nil
}

// buildTaskItems keeps open top-level tasks in Google's order and attaches
// children as subtasks. Completed subtasks stay, flagged, so progress shows.
func buildTaskItems(listID string, items []*tasks.Task, loc *time.Location) []overview.Item {
	sorted := make([]*tasks.Task, 0, len(items))
	for _, item := range items {
		if item == nil || item.Deleted {
			continue
		}
		sorted = append(sorted, item)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	children := map[string][]overview.Subtask{}
	for _, item := range sorted {
		if item.Parent == "" {
			continue
		}
		body, _ := metadata.Split(item.Notes)
		children[item.Parent] = append(children[item.Parent], overview.Subtask{
			ID:        item.Id,
			Title:     item.Title,
			Notes:     body,
			Completed: item.Status == "completed",
		})
	}

	var out []overview.Item
	for _, item := range sorted {
		if item.Parent != "" || item.Status == "completed" || strings.TrimSpace(item.Title) == "" {
			continue
		}
		body, fields := metadata.Split(item.Notes)
		task := overview.Task{
			ID:         item.Id,
			ListID:     listID,
			Title:      item.Title,
			Notes:      body,
			Source:     fields[metadata.KeySource],
			Deeplink:   fields[metadata.KeyLink],
			Recurrence: fields[metadata.KeyRRule],
			Subtasks:   children[item.Id],
		}
		if due, ok := parseDue(item.Due, loc); ok {
			task.Due = due
			task.HasDue = true
		}
		out = append(out, overview.TaskItem(task))
	}
	return out
}

// Google stores due dates as midnight UTC of the chosen day.
func parseDue(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
}

func (s *TaskLists) Complete(ctx context.Context, listID, taskID string) error {
	if _, err := s.svc.CompleteTask(ctx, listID, taskID); err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}

// SaveNotes replaces the visible notes of a task or subtask and keeps the
// markers stored on it.
func (s *TaskLists) SaveNotes(ctx context.Context, listID, taskID, notes string) error {
	current, err := s.svc.GetTask(ctx, listID, taskID)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}
	_, fields := metadata.Split(current.Notes)
	if _, err := s.svc.UpdateNotes(ctx, listID, taskID, metadata.Join(strings.TrimRight(notes, " \t\n"), fields)); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

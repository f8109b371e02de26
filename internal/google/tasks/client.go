package tasks

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

const pageSize = 100

type Client struct {
	svc *tasks.Service
}

// New builds a client on an authorized HTTP client. Extra options are
// appended, which lets tests point the service at a local server.
func New(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

func (c *Client) ListTaskLists(ctx context.Context) ([]*tasks.TaskList, error) {
	var out []*tasks.TaskList
	err := c.svc.Tasklists.List().MaxResults(pageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		out = append(out, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasklists: %w", err)
	}
	return out, nil
}

func (c *Client) CreateTaskList(ctx context.Context, title string) (*tasks.TaskList, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	list := &tasks.TaskList{Title: title}
	return c.svc.Tasklists.Insert(list).Context(ctx).Do()
}

// ListTasks returns every task of the list, subtasks included. Google marks
// subtasks with Parent.
func (c *Client) ListTasks(ctx context.Context, listID string, showCompleted bool) ([]*tasks.Task, error) {
	if listID == "" {
		return nil, fmt.Errorf("listID is required")
	}
	var out []*tasks.Task
	call := c.svc.Tasks.List(listID).
		MaxResults(pageSize).
		ShowCompleted(showCompleted).
		ShowHidden(showCompleted)
	err := call.Pages(ctx, func(resp *tasks.Tasks) error {
		out = append(out, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks of %s: %w", listID, err)
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, listID, taskID string) (*tasks.Task, error) {
	return c.svc.Tasks.Get(listID, taskID).Context(ctx).Do()
}

func (c *Client) CompleteTask(ctx context.Context, listID, taskID string) (*tasks.Task, error) {
	if listID == "" || taskID == "" {
		return nil, fmt.Errorf("listID and taskID are required")
	}
	patch := &tasks.Task{Status: "completed"}
	return c.svc.Tasks.Patch(listID, taskID, patch).Context(ctx).Do()
}

// UpdateNotes replaces the notes of a task. Empty notes clear the field.
func (c *Client) UpdateNotes(ctx context.Context, listID, taskID, notes string) (*tasks.Task, error) {
	if listID == "" || taskID == "" {
		return nil, fmt.Errorf("listID and taskID are required")
	}
	patch := &tasks.Task{Notes: notes, ForceSendFields: []string{"Notes"}}
	return c.svc.Tasks.Patch(listID, taskID, patch).Context(ctx).Do()
}

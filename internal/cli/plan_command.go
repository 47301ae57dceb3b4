package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"zenith/internal/api"
)

// PlanCommand plans a day from a task file and prints the schedule.
type PlanCommand struct {
	app    *App
	format string
}

// NewPlanCommand creates a new plan command handler
func NewPlanCommand(app *App, format string) *PlanCommand {
	return &PlanCommand{app: app, format: format}
}

// Execute reads the task list from args[0], or from standard input when the
// argument is "-" or missing.
func (c *PlanCommand) Execute(ctx context.Context, args []string) error {
	if err := checkFormat(c.format); err != nil {
		return err
	}

	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	data, err := c.read(name)
	if err != nil {
		return err
	}

	records, err := DecodeTaskRecords(data, name)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", displayName(name), err)
	}

	resp, err := c.app.api.GenerateDurations(ctx, records)
	if err != nil {
		return NewErrorHandler().Handle("plan day", err)
	}

	r := NewRenderer(c.app.out)
	if c.format == FormatJSON {
		return r.JSON(resp)
	}
	return r.Schedule(resp)
}

func (c *PlanCommand) read(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(c.app.in)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	return data, nil
}

func displayName(name string) string {
	if name == "-" {
		return "standard input"
	}
	return name
}

// taskFile is the document form of a task list: {"tasks": [...]}.
type taskFile struct {
	Tasks []api.TaskRecord `json:"tasks" yaml:"tasks"`
}

// DecodeTaskRecords parses a task list written either as a bare list or as a
// document with a tasks key. Files named *.json, and any input that starts
// with '[' or '{', are read as JSON; everything else as YAML. An input that
// holds no list at all yields a nil slice.
func DecodeTaskRecords(data []byte, name string) ([]api.TaskRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if strings.EqualFold(filepath.Ext(name), ".json") ||
		bytes.HasPrefix(trimmed, []byte("[")) || bytes.HasPrefix(trimmed, []byte("{")) {
		return decodeJSONTasks(trimmed)
	}
	return decodeYAMLTasks(data)
}

func decodeJSONTasks(data []byte) ([]api.TaskRecord, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '{' {
		var doc taskFile
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Tasks, nil
	}
	var records []api.TaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeYAMLTasks(data []byte) ([]api.TaskRecord, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		records := []api.TaskRecord{}
		if err := node.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	case yaml.MappingNode:
		var doc taskFile
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Tasks, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("line %d: expected a list of tasks", node.Line)
}

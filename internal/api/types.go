package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Text is a scalar that clients may send either as a string or as a number,
// such as "type": "1" or "type": 1. It is always written back as a string.
type Text string

// UnmarshalJSON accepts a JSON string, number, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar node.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		*t = ""
		return nil
	}
	*t = Text(node.Value)
	return nil
}

// TaskRecord is one task as submitted by a client.
type TaskRecord struct {
	ID           Text   `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description,omitempty" yaml:"description"`
	StartDate    string `json:"startDate,omitempty" yaml:"startDate"`
	EndDate      string `json:"endDate,omitempty" yaml:"endDate"`
	StartTime    string `json:"startTime,omitempty" yaml:"startTime"`
	EndTime      string `json:"endTime,omitempty" yaml:"endTime"`
	Type         Text   `json:"type" yaml:"type"`
	Effort       Text   `json:"effort,omitempty" yaml:"effort"`
	Enjoyability Text   `json:"enjoyability,omitempty" yaml:"enjoyability"`
	ColorCode    string `json:"colorCode,omitempty" yaml:"colorCode"`
	Archived     bool   `json:"archived" yaml:"archived"`
}

// TaskResponse is one task placed on the timeline.
type TaskResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Type         string `json:"type"`
	Effort       string `json:"effort,omitempty"`
	Enjoyability string `json:"enjoyability,omitempty"`
	ColorCode    string `json:"colorCode,omitempty"`
	Archived     bool   `json:"archived"`

	// Duration and BreakDuration are hours and are only set for auto tasks.
	Duration      *float64 `json:"duration,omitempty"`
	BreakDuration *float64 `json:"breakDuration,omitempty"`
	Overrun       bool     `json:"overrun,omitempty"`
}

// ScheduleResponse is the body of a successful planning request.
type ScheduleResponse struct {
	Tasks              []TaskResponse `json:"tasks"`
	Warnings           []string       `json:"warnings,omitempty"`
	TotalProductivity  float64        `json:"totalProductivity"`
	UsedTime           float64        `json:"usedTime"`
	TotalAvailableTime float64        `json:"totalAvailableTime"`
}

// RunResponse describes one audited planning run.
type RunResponse struct {
	ID                 string  `json:"id"`
	CreatedAt          string  `json:"createdAt"`
	Status             string  `json:"status"`
	ErrorCode          string  `json:"errorCode,omitempty"`
	AutoTasks          int     `json:"autoTasks"`
	ManualTasks        int     `json:"manualTasks"`
	UsedTime           float64 `json:"usedTime"`
	TotalAvailableTime float64 `json:"totalAvailableTime"`
	TotalProductivity  float64 `json:"totalProductivity"`
	Iterations         int     `json:"iterations"`
	ElapsedMS          int64   `json:"elapsedMs"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

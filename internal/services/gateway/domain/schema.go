package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	apperrors "github.com/louisbranch/agenthub/internal/platform/errors"
)

// Input schemas for each action. Unknown properties are allowed and ignored.
var (
	FollowUpSchema = &jsonschema.Schema{
		Type:     "object",
		Required: []string{"client_id"},
		Properties: map[string]*jsonschema.Schema{
			"client_id":   {Type: "string", Description: "client identifier"},
			"channel":     {Type: "string", Description: "communication channel (defaults to email)"},
			"instruction": {Types: []string{"string", "null"}, Description: "free-text instruction stored as the message body"},
		},
	}
	AmendSchema = &jsonschema.Schema{
		Type:     "object",
		Required: []string{"client_id", "description"},
		Properties: map[string]*jsonschema.Schema{
			"client_id":   {Type: "string", Description: "client identifier"},
			"description": {Type: "string", Description: "amendment text stored as the document content"},
		},
	}
	TaskSchema = &jsonschema.Schema{
		Type:     "object",
		Required: []string{"title"},
		Properties: map[string]*jsonschema.Schema{
			"client_id": {Types: []string{"string", "null"}, Description: "optional client identifier"},
			"title":     {Type: "string", Description: "task title"},
			"due_at":    {Types: []string{"string", "null"}, Description: "optional due date-time, stored as given"},
		},
	}
	ReminderSchema = &jsonschema.Schema{
		Type:     "object",
		Required: []string{"client_id", "cadence_days"},
		Properties: map[string]*jsonschema.Schema{
			"client_id":    {Type: "string", Description: "client identifier"},
			"cadence_days": {Type: "integer", Description: "reminder cadence in days"},
		},
	}
)

var (
	followUpResolved = mustResolve(FollowUpSchema)
	amendResolved    = mustResolve(AmendSchema)
	taskResolved     = mustResolve(TaskSchema)
	reminderResolved = mustResolve(ReminderSchema)
)

func mustResolve(schema *jsonschema.Schema) *jsonschema.Resolved {
	resolved, err := schema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("resolve payload schema: %v", err))
	}
	return resolved
}

// DecodeFollowUp validates body and decodes it, defaulting the channel.
func DecodeFollowUp(body []byte) (FollowUpPayload, error) {
	p := FollowUpPayload{Channel: DefaultChannel}
	err := decode(FollowUpSchema, followUpResolved, body, &p)
	return p, err
}

// DecodeAmend validates and decodes an amendment body.
func DecodeAmend(body []byte) (AmendPayload, error) {
	var p AmendPayload
	err := decode(AmendSchema, amendResolved, body, &p)
	return p, err
}

// DecodeTask validates and decodes a task body.
func DecodeTask(body []byte) (TaskPayload, error) {
	var p TaskPayload
	err := decode(TaskSchema, taskResolved, body, &p)
	return p, err
}

// DecodeReminder validates and decodes a reminder body.
func DecodeReminder(body []byte) (ReminderPayload, error) {
	var p ReminderPayload
	err := decode(ReminderSchema, reminderResolved, body, &p)
	return p, err
}

// decode checks body against schema before touching target, so a rejected
// payload never yields a partially filled value. Only properties the schema
// declares, matched by exact name, reach target; fields absent from body keep
// whatever default target already holds.
func decode(schema *jsonschema.Schema, resolved *jsonschema.Resolved, body []byte, target any) error {
	var instance any
	if err := json.Unmarshal(body, &instance); err != nil {
		return invalidPayload(fmt.Errorf("decode body: %w", err))
	}
	if err := resolved.Validate(instance); err != nil {
		return invalidPayload(err)
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return invalidPayload(fmt.Errorf("decode body: expected a JSON object"))
	}
	declared := make(map[string]any, len(schema.Properties))
	for name := range schema.Properties {
		if value, ok := object[name]; ok {
			declared[name] = value
		}
	}
	// Re-encoding the validated values also turns whole-number floats such as
	// 30.0 into integers.
	data, err := json.Marshal(declared)
	if err != nil {
		return invalidPayload(fmt.Errorf("encode payload: %w", err))
	}
	if err := json.Unmarshal(data, target); err != nil {
		return invalidPayload(fmt.Errorf("decode payload: %w", err))
	}
	return nil
}

func invalidPayload(err error) error {
	return apperrors.Wrap(apperrors.CodeInvalidPayload, err)
}

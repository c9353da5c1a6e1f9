package domain

// Tables written by the gateway. The remote store owns their schema.
const (
	TableMessages  = "messages"
	TableDocuments = "documents"
	TableEvents    = "events"
)

// Fixed values stamped onto records.
const (
	DefaultChannel      = "email"
	FollowUpPlaceholder = "Follow-up"
	DirectionOutbound   = "out"
	AmendmentTitle      = "Contract Amendment"
	DocumentStatusDraft = "draft"
	EventTypeTask       = "task"
	EventTypeReminder   = "reminder"
	TaskStatusOpen      = "open"
)

// FollowUpPayload requests an outbound message draft for a client.
type FollowUpPayload struct {
	ClientID    string  `json:"client_id" jsonschema:"client identifier"`
	Channel     string  `json:"channel,omitempty" jsonschema:"communication channel (defaults to email)"`
	Instruction *string `json:"instruction,omitempty" jsonschema:"free-text instruction stored as the message body"`
}

// AmendPayload requests a draft contract amendment document.
type AmendPayload struct {
	ClientID    string `json:"client_id" jsonschema:"client identifier"`
	Description string `json:"description" jsonschema:"amendment text stored as the document content"`
}

// TaskPayload requests a task, stored as a typed event.
type TaskPayload struct {
	ClientID *string `json:"client_id,omitempty" jsonschema:"optional client identifier"`
	Title    string  `json:"title" jsonschema:"task title"`
	DueAt    *string `json:"due_at,omitempty" jsonschema:"optional due date-time, stored as given"`
}

// ReminderPayload requests a recurring reminder, stored as a typed event.
type ReminderPayload struct {
	ClientID    string `json:"client_id" jsonschema:"client identifier"`
	CadenceDays int    `json:"cadence_days" jsonschema:"reminder cadence in days"`
}

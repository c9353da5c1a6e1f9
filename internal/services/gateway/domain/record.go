package domain

// Record is one row destined for one table.
type Record struct {
	Table string
	Row   map[string]any
}

// FollowUpRecord maps a follow-up to an outbound messages row. A missing or
// empty instruction becomes the placeholder body; content generation happens
// upstream of this service.
func FollowUpRecord(p FollowUpPayload) Record {
	body := FollowUpPlaceholder
	if p.Instruction != nil && *p.Instruction != "" {
		body = *p.Instruction
	}
	return Record{
		Table: TableMessages,
		Row: map[string]any{
			"client_id": p.ClientID,
			"direction": DirectionOutbound,
			"channel":   p.Channel,
			"body":      body,
		},
	}
}

// AmendmentRecord maps an amendment to a draft documents row.
func AmendmentRecord(p AmendPayload) Record {
	return Record{
		Table: TableDocuments,
		Row: map[string]any{
			"client_id": p.ClientID,
			"title":     AmendmentTitle,
			"status":    DocumentStatusDraft,
			"content":   p.Description,
		},
	}
}

// TaskRecord maps a task to an events row whose meta is the whole task.
func TaskRecord(p TaskPayload) Record {
	clientID := optional(p.ClientID)
	return Record{
		Table: TableEvents,
		Row: map[string]any{
			"client_id": clientID,
			"type":      EventTypeTask,
			"meta": map[string]any{
				"client_id": clientID,
				"title":     p.Title,
				"due_at":    optional(p.DueAt),
				"status":    TaskStatusOpen,
			},
		},
	}
}

// ReminderRecord maps a reminder to an events row carrying only the cadence.
func ReminderRecord(p ReminderPayload) Record {
	return Record{
		Table: TableEvents,
		Row: map[string]any{
			"client_id": p.ClientID,
			"type":      EventTypeReminder,
			"meta": map[string]any{
				"cadence_days": p.CadenceDays,
			},
		},
	}
}

// optional unwraps a pointer so absent values are an untyped nil (JSON null).
func optional(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

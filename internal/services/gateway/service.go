package gateway

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/agenthub/internal/platform/errors"
	"github.com/louisbranch/agenthub/internal/services/gateway/domain"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage"
)

// Service performs CRM actions against the store behind handle.
type Service struct {
	handle *storage.Handle
}

// NewService builds a service around a store handle.
func NewService(handle *storage.Handle) (*Service, error) {
	if handle == nil {
		return nil, errors.New("store handle is required")
	}
	return &Service{handle: handle}, nil
}

// SubmitFollowUp records an outbound message for the client.
func (s *Service) SubmitFollowUp(ctx context.Context, p domain.FollowUpPayload) error {
	_, err := s.insert(ctx, domain.FollowUpRecord(p))
	return err
}

// SubmitAmendment records a draft amendment document and returns the first
// stored row, or nil when the store echoed nothing.
func (s *Service) SubmitAmendment(ctx context.Context, p domain.AmendPayload) (storage.Row, error) {
	rows, err := s.insert(ctx, domain.AmendmentRecord(p))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// CreateTask records an open task event.
func (s *Service) CreateTask(ctx context.Context, p domain.TaskPayload) error {
	_, err := s.insert(ctx, domain.TaskRecord(p))
	return err
}

// SetReminder records a reminder event carrying the cadence.
func (s *Service) SetReminder(ctx context.Context, p domain.ReminderPayload) error {
	_, err := s.insert(ctx, domain.ReminderRecord(p))
	return err
}

// insert makes exactly one attempt; nothing is retried.
func (s *Service) insert(ctx context.Context, record domain.Record) ([]storage.Row, error) {
	if s == nil || s.handle == nil {
		return nil, apperrors.New(apperrors.CodeConfigurationMissing, "store handle is not configured")
	}
	store, err := s.handle.Get(ctx)
	if err != nil {
		recordInsert(record.Table, resultUnavailable)
		if apperrors.GetCode(err) != apperrors.CodeUnknown {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodeConfigurationMissing, fmt.Errorf("open store: %w", err))
	}
	rows, err := store.Insert(ctx, record.Table, storage.Row(record.Row))
	if err != nil {
		recordInsert(record.Table, resultError)
		return nil, apperrors.Wrap(apperrors.CodeStoreOperationFailed, err)
	}
	recordInsert(record.Table, resultOK)
	return rows, nil
}

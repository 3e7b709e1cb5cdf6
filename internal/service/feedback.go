package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/notice"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// DefaultFeedbackListLimit caps how many entries a listing returns.
const DefaultFeedbackListLimit = 50

// SubmitFeedbackInput holds the parameters for submitting feedback.
type SubmitFeedbackInput struct {
	Type    string `json:"type" validate:"required,oneof=bug feature improvement general"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
	Email   string `json:"email" validate:"omitempty,email"`
	PageURL string `json:"page_url" validate:"omitempty,max=500"`
}

// FeedbackService implements the business logic for shopper feedback.
type FeedbackService struct {
	repo     repository.FeedbackRepository
	producer *event.Producer
	notices  *notice.Queue
	logger   *slog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	repo repository.FeedbackRepository,
	producer *event.Producer,
	notices *notice.Queue,
	logger *slog.Logger,
) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		producer: producer,
		notices:  notices,
		logger:   logger,
	}
}

// Submit validates and stores a feedback entry, thanks the shopper with
// a notice, and announces the submission on the bus.
func (s *FeedbackService) Submit(ctx context.Context, sessionID string, input SubmitFeedbackInput) (*domain.Feedback, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if !domain.IsValidFeedbackType(input.Type) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("feedback type must be one of %s", strings.Join(domain.ValidFeedbackTypes, ", ")))
	}
	message := strings.TrimSpace(input.Message)
	if len(message) < domain.MinFeedbackMessageLen {
		return nil, apperrors.InvalidInput(fmt.Sprintf("message must be at least %d characters", domain.MinFeedbackMessageLen))
	}
	if len(message) > domain.MaxFeedbackMessageLen {
		return nil, apperrors.InvalidInput(fmt.Sprintf("message must not exceed %d characters", domain.MaxFeedbackMessageLen))
	}

	fb := &domain.Feedback{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Type:      input.Type,
		Message:   message,
		Email:     strings.TrimSpace(input.Email),
		PageURL:   strings.TrimSpace(input.PageURL),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, fb); err != nil {
		return nil, apperrors.Persistence(err)
	}

	s.notices.Push(sessionID, domain.NoticeSeveritySuccess, "Thanks for your feedback!", 0)

	if err := s.producer.PublishFeedbackSubmitted(ctx, fb); err != nil {
		s.logger.ErrorContext(ctx, "publish feedback submitted",
			slog.String("feedback_id", fb.ID),
			slog.String("error", err.Error()),
		)
	}

	return fb, nil
}

// List returns recent feedback entries, newest first.
func (s *FeedbackService) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 || limit > DefaultFeedbackListLimit {
		limit = DefaultFeedbackListLimit
	}

	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	return entries, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/moderation"
	"github.com/utafrali/storefront/internal/notice"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SubmitReviewInput holds the parameters for submitting a review.
type SubmitReviewInput struct {
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title       string `json:"title" validate:"required,max=100"`
	Body        string `json:"body" validate:"required,min=10,max=1000"`
	AuthorName  string `json:"author_name" validate:"required,max=50"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email"`
	Recommends  bool   `json:"recommends"`
}

// ReviewPage is a filtered view of a page's reviews together with the
// summary over the full collection.
type ReviewPage struct {
	Reviews []domain.Review      `json:"reviews"`
	Summary domain.RatingSummary `json:"summary"`
}

// ReviewCatalog implements the business logic for page review
// collections. Collections live in memory and are written through to
// the repository on every mutation; a failed write degrades to a
// shopper-visible warning instead of losing the mutation.
type ReviewCatalog struct {
	repo      repository.ReviewRepository
	producer  *event.Producer
	announcer *event.Announcer
	moderator *moderation.Client
	notices   *notice.Queue
	logger    *slog.Logger

	mu          sync.RWMutex
	collections map[string][]domain.Review
}

// NewReviewCatalog creates a new review catalog service.
func NewReviewCatalog(
	repo repository.ReviewRepository,
	producer *event.Producer,
	announcer *event.Announcer,
	moderator *moderation.Client,
	notices *notice.Queue,
	logger *slog.Logger,
) *ReviewCatalog {
	return &ReviewCatalog{
		repo:        repo,
		producer:    producer,
		announcer:   announcer,
		moderator:   moderator,
		notices:     notices,
		logger:      logger,
		collections: make(map[string][]domain.Review),
	}
}

// Submit validates and adds a review to the page's collection, newest
// first. The review is accepted even when persistence fails; the
// shopper gets a warning notice and the in-memory collection stays
// authoritative for the rest of the process lifetime.
func (s *ReviewCatalog) Submit(ctx context.Context, sessionID, pageID string, input SubmitReviewInput) (*domain.Review, error) {
	if pageID == "" {
		return nil, apperrors.InvalidInput("page id is required")
	}
	if input.Rating < domain.MinRating || input.Rating > domain.MaxRating {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	body := strings.TrimSpace(input.Body)
	if len(body) < domain.MinBodyLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("review body must be at least %d characters", domain.MinBodyLength))
	}
	if len(body) > domain.MaxBodyLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("review body must not exceed %d characters", domain.MaxBodyLength))
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if len(title) > domain.MaxTitleLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("title must not exceed %d characters", domain.MaxTitleLength))
	}
	author := strings.TrimSpace(input.AuthorName)
	if author == "" {
		return nil, apperrors.InvalidInput("author name is required")
	}
	if len(author) > domain.MaxAuthorNameLen {
		return nil, apperrors.InvalidInput(fmt.Sprintf("author name must not exceed %d characters", domain.MaxAuthorNameLen))
	}

	review := domain.Review{
		ID:          time.Now().UnixMilli(),
		Rating:      input.Rating,
		Title:       title,
		Body:        body,
		AuthorName:  author,
		AuthorEmail: strings.TrimSpace(input.AuthorEmail),
		Recommends:  input.Recommends,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	reviews, err := s.collectionLocked(ctx, pageID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	reviews = append([]domain.Review{review}, reviews...)
	s.collections[pageID] = reviews
	summary := domain.Summarize(reviews)
	s.mu.Unlock()

	s.persist(ctx, sessionID, pageID, reviews)
	s.notices.Push(sessionID, domain.NoticeSeveritySuccess, "Thanks! Your review has been submitted.", 0)

	if err := s.producer.PublishReviewSubmitted(ctx, pageID, &review); err != nil {
		s.logger.ErrorContext(ctx, "publish review submitted",
			slog.String("page_id", pageID),
			slog.String("error", err.Error()),
		)
	}
	s.announcer.Announce(pageID, summary)

	return &review, nil
}

// List returns the page's reviews matching the filter, newest first,
// along with the summary over the unfiltered collection.
func (s *ReviewCatalog) List(ctx context.Context, pageID, filter string) (*ReviewPage, error) {
	if pageID == "" {
		return nil, apperrors.InvalidInput("page id is required")
	}

	f, err := domain.ParseReviewFilter(filter)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	s.mu.Lock()
	reviews, err := s.collectionLocked(ctx, pageID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return &ReviewPage{
		Reviews: domain.FilterReviews(reviews, f),
		Summary: domain.Summarize(reviews),
	}, nil
}

// Summary returns the rating summary for a page, recomputed from the
// current collection.
func (s *ReviewCatalog) Summary(ctx context.Context, pageID string) (domain.RatingSummary, error) {
	if pageID == "" {
		return domain.RatingSummary{}, apperrors.InvalidInput("page id is required")
	}

	s.mu.Lock()
	reviews, err := s.collectionLocked(ctx, pageID)
	s.mu.Unlock()
	if err != nil {
		return domain.RatingSummary{}, err
	}

	return domain.Summarize(reviews), nil
}

// MarkHelpful increments the helpful counter of a review.
func (s *ReviewCatalog) MarkHelpful(ctx context.Context, sessionID, pageID string, reviewID int64) (*domain.Review, error) {
	if pageID == "" {
		return nil, apperrors.InvalidInput("page id is required")
	}

	s.mu.Lock()
	reviews, err := s.collectionLocked(ctx, pageID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	var updated *domain.Review
	for i := range reviews {
		if reviews[i].ID == reviewID {
			reviews[i].HelpfulCount++
			r := reviews[i]
			updated = &r
			break
		}
	}
	if updated != nil {
		s.collections[pageID] = reviews
	}
	s.mu.Unlock()

	if updated == nil {
		return nil, apperrors.NotFound("review", fmt.Sprintf("%d", reviewID))
	}

	s.persist(ctx, sessionID, pageID, reviews)
	return updated, nil
}

// Report flags a review for moderation. The review stays visible; the
// flag is forwarded to the moderation webhook and announced on the bus.
func (s *ReviewCatalog) Report(ctx context.Context, sessionID, pageID string, reviewID int64) error {
	if pageID == "" {
		return apperrors.InvalidInput("page id is required")
	}

	s.mu.Lock()
	reviews, err := s.collectionLocked(ctx, pageID)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	var reported *domain.Review
	for i := range reviews {
		if reviews[i].ID == reviewID {
			reported = &reviews[i]
			break
		}
	}
	if reported == nil {
		return apperrors.NotFound("review", fmt.Sprintf("%d", reviewID))
	}

	if err := s.moderator.Report(ctx, moderation.ReportPayload{
		PageID:     pageID,
		ReviewID:   reported.ID,
		Rating:     reported.Rating,
		Title:      reported.Title,
		Body:       reported.Body,
		AuthorName: reported.AuthorName,
		ReportedAt: time.Now().UTC(),
	}); err != nil {
		s.logger.ErrorContext(ctx, "forward review report",
			slog.String("page_id", pageID),
			slog.Int64("review_id", reviewID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishReviewReported(ctx, pageID, reviewID); err != nil {
		s.logger.ErrorContext(ctx, "publish review reported",
			slog.String("page_id", pageID),
			slog.String("error", err.Error()),
		)
	}

	s.notices.Push(sessionID, domain.NoticeSeverityInfo, "Thanks, this review has been flagged for moderation.", 0)
	return nil
}

// collectionLocked returns a copy of the page's collection, loading it
// from the repository on first access. Callers must hold s.mu; the
// returned copy shares no backing array with the map, so it is safe to
// read or persist after the lock is released. Mutators store their
// modified copy back into s.collections before unlocking.
func (s *ReviewCatalog) collectionLocked(ctx context.Context, pageID string) ([]domain.Review, error) {
	if reviews, ok := s.collections[pageID]; ok {
		return slices.Clone(reviews), nil
	}

	reviews, err := s.repo.Load(ctx, pageID)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	s.collections[pageID] = reviews
	return slices.Clone(reviews), nil
}

// persist writes the whole collection through to the repository. A
// failure is downgraded to a warning notice so the mutation survives
// in memory.
func (s *ReviewCatalog) persist(ctx context.Context, sessionID, pageID string, reviews []domain.Review) {
	if err := s.repo.Save(ctx, pageID, reviews); err != nil {
		s.logger.WarnContext(ctx, "review collection not persisted",
			slog.String("page_id", pageID),
			slog.String("error", err.Error()),
		)
		s.notices.Push(sessionID, domain.NoticeSeverityWarning,
			"Your change is visible now but could not be saved; it may not survive past this visit.", 0)
	}
}

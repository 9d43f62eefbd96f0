package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"karigar/internal/data/entity"
	"karigar/internal/data/repository"
	"karigar/internal/dto/request"
	"karigar/internal/dto/response"
	"karigar/pkg/apperror"
	"karigar/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, actor utils.Actor, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ListServiceReviews(ctx context.Context, serviceID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	ListProviderReviews(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	SetVisibility(ctx context.Context, actor utils.Actor, reviewID string, req *request.ReviewVisibilityRequest) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, actor utils.Actor, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate
	if err := validateRequest(s.log, "Create review", req); err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleCustomer); err != nil {
		return nil, err
	}
	bookingID, err := parseID(req.BookingID, "booking")
	if err != nil {
		return nil, err
	}

	// 2. Booking must be the customer's own and finished
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking")
	}
	if booking.CustomerID != actor.UserID {
		return nil, apperror.Forbidden("only the customer of the booking can review it")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, apperror.Validation("only completed bookings can be reviewed")
	}

	// 3. One review per booking
	existing, err := s.repo.Review.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("booking already reviewed")
	}

	var comment *string
	if req.Comment != nil {
		if c := strings.TrimSpace(*req.Comment); c != "" {
			comment = &c
		}
	}
	review := &entity.Review{
		BaseSimple: entity.NewBaseSimple(s.now()),
		BookingID:  bookingID,
		ServiceID:  booking.ServiceID,
		ProviderID: booking.ProviderID,
		CustomerID: actor.UserID,
		Rating:     req.Rating,
		Comment:    comment,
		Status:     entity.ReviewVisible,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Conflict("booking already reviewed")
		}
		s.log.Error("Failed to create review", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("provider_id", review.ProviderID.String()),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) ListServiceReviews(ctx context.Context, serviceID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := parseID(serviceID, "service")
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ReviewFilter{ServiceID: id}, req)
}

func (s *reviewService) ListProviderReviews(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := parseID(providerID, "provider")
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ReviewFilter{ProviderID: id}, req)
}

func (s *reviewService) list(ctx context.Context, filter repository.ReviewFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	req.Normalize()
	filter.OnlyVisible = true
	filter.Limit = req.Limit()
	filter.Offset = req.Offset()

	reviews, total, err := s.repo.Review.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	items := make([]response.ReviewResponse, len(reviews))
	for i, r := range reviews {
		items[i] = response.ReviewToResponse(r)
	}
	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *reviewService) SetVisibility(ctx context.Context, actor utils.Actor, reviewID string, req *request.ReviewVisibilityRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(s.log, "Set review visibility", req); err != nil {
		return nil, err
	}
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	id, err := parseID(reviewID, "review")
	if err != nil {
		return nil, err
	}

	review, err := s.findReview(ctx, id)
	if err != nil {
		return nil, err
	}

	status := entity.ReviewStatus(req.Status)
	if review.Status != status {
		if err := s.repo.Review.UpdateStatus(ctx, id, status); err != nil {
			return nil, fmt.Errorf("update review status: %w", err)
		}
		review.Status = status
		s.log.Info("Review visibility changed", zap.String("review_id", reviewID), zap.String("status", req.Status))
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) findReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, apperror.NotFound("review")
	}
	return review, nil
}

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/genno-io/genno/internal/pkg/validators"
)

// conversionService implements the ConversionService interface
type conversionService struct {
	conversionRepo conversions.ConversionRepository
	creditService  credits.CreditService
	connector      conversions.AIWebhookConnector
	logger         logger.Logger
}

// NewConversionService creates a new instance of ConversionService
func NewConversionService(
	conversionRepo conversions.ConversionRepository,
	creditService credits.CreditService,
	connector conversions.AIWebhookConnector,
	logger logger.Logger,
) (conversions.ConversionService, error) {
	return &conversionService{
		conversionRepo: conversionRepo,
		creditService:  creditService,
		connector:      connector,
		logger:         logger,
	}, nil
}

// Submit order: validate, charge, record, call. Anything failing after the charge refunds it.
func (s *conversionService) Submit(ctx context.Context, userID, youtubeURL string) (*conversions.Conversion, error) {
	youtubeURL = strings.TrimSpace(youtubeURL)
	if !validators.IsYouTubeURL(youtubeURL) {
		return nil, conversions.ErrInvalidURL
	}

	if _, err := s.creditService.Deduct(ctx, credits.NewDeductRequest(userID, conversions.CreditCost, conversions.CreditReason, nil)); err != nil {
		return nil, err
	}

	conversion := conversions.New(userID, youtubeURL, time.Now().UTC())
	if err := s.conversionRepo.Create(ctx, conversion); err != nil {
		s.refund(ctx, userID)
		return nil, fmt.Errorf("failed to record conversion: %w", err)
	}

	err := s.connector.Submit(ctx, &conversions.WebhookRequest{
		VideoURL:     youtubeURL,
		ClerkUserID:  userID,
		ConversionID: conversion.ID,
	})

	// the request may be gone by now; the status and the refund must still land
	bg := context.WithoutCancel(ctx)
	if err != nil {
		s.logger.Error("AI webhook failed", "conversion_id", conversion.ID, "error", err)
		conversion.MarkFailed(err.Error(), time.Now().UTC())
		if uerr := s.conversionRepo.Update(bg, conversion); uerr != nil {
			s.logger.Error("failed to mark conversion failed", "conversion_id", conversion.ID, "error", uerr)
		}
		s.refund(bg, userID)
		return conversion, fmt.Errorf("%w: %v", conversions.ErrWebhookFailed, err)
	}

	conversion.MarkSubmitted(time.Now().UTC())
	if err := s.conversionRepo.Update(bg, conversion); err != nil {
		s.logger.Error("failed to mark conversion submitted", "conversion_id", conversion.ID, "error", err)
	}
	return conversion, nil
}

func (s *conversionService) refund(ctx context.Context, userID string) {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.creditService.Grant(ctx, userID, conversions.CreditCost, conversions.RefundReason); err != nil {
		s.logger.Error("credit refund failed", "user_id", userID, "error", err)
	}
}

// Get hides conversions of other users behind ErrNotFound
func (s *conversionService) Get(ctx context.Context, userID, id string) (*conversions.Conversion, error) {
	conversion, err := s.conversionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conversion.ClerkUserID != userID {
		return nil, fmt.Errorf("%w: %s", conversions.ErrNotFound, id)
	}
	return conversion, nil
}

func (s *conversionService) List(ctx context.Context, userID string) ([]*conversions.Conversion, error) {
	return s.conversionRepo.ListByUser(ctx, userID)
}

// Complete is a no-op for conversions that already finished.
// A blog ingested for another user than the one who submitted is rejected with ErrOwnerMismatch.
func (s *conversionService) Complete(ctx context.Context, userID, id, blogID string) error {
	conversion, err := s.conversionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if conversion.ClerkUserID != userID {
		s.logger.Warn("ingested blog does not belong to conversion owner", "conversion_id", id, "user_id", userID)
		return fmt.Errorf("%w: %s", conversions.ErrOwnerMismatch, id)
	}
	if !conversion.IsOpen() {
		s.logger.Warn("conversion already closed", "conversion_id", id, "status", conversion.Status)
		return nil
	}

	conversion.MarkCompleted(blogID, time.Now().UTC())
	return s.conversionRepo.Update(ctx, conversion)
}

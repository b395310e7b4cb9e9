package services

import (
	"context"
	"fmt"
	"strings"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/utils"
)

const (
	chatMaxOutputTokens = 2048
	maxChatMessageLen   = 2000
)

type ChatServiceInterface interface {
	Ask(ctx context.Context, session request_models.Session, tripID, message string) (*response_models.TripChatResponse, error)
}

type ChatService struct {
	oracle utils.TextOracle
	trips  TripServiceInterface
	log    *logger.Logger
}

func NewChatService(oracle utils.TextOracle, trips TripServiceInterface, log *logger.Logger) ChatServiceInterface {
	return &ChatService{oracle: oracle, trips: trips, log: log}
}

func (c *ChatService) Ask(ctx context.Context, session request_models.Session, tripID, message string) (*response_models.TripChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", utils.ErrInvalidInput)
	}
	if len(message) > maxChatMessageLen {
		return nil, fmt.Errorf("%w: message is too long", utils.ErrInvalidInput)
	}

	trip, err := c.trips.GetTrip(ctx, session, tripID)
	if err != nil {
		return nil, err
	}

	reply, err := callOracle(ctx, c.oracle, "chat", &utils.GenerationRequest{
		Prompt:          BuildChatPrompt(trip, message),
		MaxOutputTokens: chatMaxOutputTokens,
	})
	if err != nil {
		c.log.WithUser(session.Email).WithError(err).Warn("Chat request failed")
		return nil, err
	}
	return &response_models.TripChatResponse{TripID: trip.ID, Reply: strings.TrimSpace(reply)}, nil
}

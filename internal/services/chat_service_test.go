package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tripplanner/pkg/logger"
	"tripplanner/pkg/utils"
)

func TestChatAsk(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)
	chat := NewChatService(f.oracle, f.trips, logger.NewNop())

	f.oracle.replies = []string{"  ## Food\n- Try Fort Road Food Street  "}
	res, err := chat.Ask(context.Background(), sara, trip.ID, "Where should we eat?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if res.Reply != "## Food\n- Try Fort Road Food Street" || res.TripID != trip.ID {
		t.Fatalf("reply = %+v", res)
	}

	req := f.oracle.requests[len(f.oracle.requests)-1]
	if req.JSONOutput || req.MaxOutputTokens != 2048 {
		t.Fatalf("chat must be plain text with 2048 tokens: %+v", req)
	}
	for _, want := range []string{"- Destination: Lahore, Pakistan", "- Pearl Continental (Rs. 42,500 per night)", "  - Badshahi Mosque", "USER QUERY: Where should we eat?"} {
		if !strings.Contains(req.Prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, req.Prompt)
		}
	}
}

func TestChatAskRejects(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)
	chat := NewChatService(f.oracle, f.trips, logger.NewNop())
	ctx := context.Background()

	if _, err := chat.Ask(ctx, sara, trip.ID, "   "); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("blank message: err = %v", err)
	}
	if _, err := chat.Ask(ctx, ali, trip.ID, "hello"); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("other user: err = %v", err)
	}
}

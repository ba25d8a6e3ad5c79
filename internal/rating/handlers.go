package rating

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/parthjadhav85/MyTools-Website/internal/config"
	"github.com/parthjadhav85/MyTools-Website/internal/httputil"
)

// Average is TotalScore/Votes serialized with exactly one decimal place, the
// shape clients already parse.
type Average float64

func (a Average) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'f', 1, 64)), nil
}

func average(votes, totalScore int) Average {
	if votes == 0 {
		return 0
	}
	return Average(float64(totalScore) / float64(votes))
}

// RatingStore is the aggregate persistence the handlers need; *Store satisfies it.
type RatingStore interface {
	Get(ctx context.Context, toolName string) (*Rating, error)
	Submit(ctx context.Context, toolName string, stars int) (*Rating, error)
}

// Handler serves the public rating endpoints.
type Handler struct {
	Store RatingStore
	Seeds config.RatingSeeds
}

type ratingResponse struct {
	Success bool    `json:"success,omitempty"`
	Votes   int     `json:"votes"`
	Average Average `json:"average"`
}

// GetRatingHandler returns a tool's vote count and average. A tool nobody has
// rated gets the fixed placeholder, not a zero.
func (h *Handler) GetRatingHandler(w http.ResponseWriter, r *http.Request) {
	toolName := chi.URLParam(r, "tool")

	agg, err := h.Store.Get(r.Context(), toolName)
	if errors.Is(err, ErrNotRated) {
		httputil.JSON(w, http.StatusOK, ratingResponse{
			Votes:   h.Seeds.PlaceholderVotes,
			Average: Average(h.Seeds.PlaceholderAverage),
		})
		return
	}
	if err != nil {
		log.Printf("rating: get %q: %v", toolName, err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.JSON(w, http.StatusOK, ratingResponse{
		Votes:   agg.Votes,
		Average: average(agg.Votes, agg.TotalScore),
	})
}

// SubmitRatingHandler records one vote and returns the updated aggregate.
// Stars is deliberately not range-checked; the contract accepts any value.
func (h *Handler) SubmitRatingHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ToolName string `json:"toolName"`
		Stars    int    `json:"stars"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.ToolName == "" {
		httputil.Error(w, http.StatusBadRequest, "Tool name is required")
		return
	}

	agg, err := h.Store.Submit(r.Context(), req.ToolName, req.Stars)
	if err != nil {
		log.Printf("rating: submit %q: %v", req.ToolName, err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.JSON(w, http.StatusOK, ratingResponse{
		Success: true,
		Votes:   agg.Votes,
		Average: average(agg.Votes, agg.TotalScore),
	})
}

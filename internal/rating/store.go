package rating

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parthjadhav85/MyTools-Website/internal/config"
)

// ErrNotRated marks a tool with no aggregate yet.
var ErrNotRated = errors.New("no ratings for tool")

// Key returns the storage key for a tool name. A fresh caser per call:
// cases.Caser is stateful and not safe for concurrent use.
func Key(toolName string) string {
	return cases.Fold().String(strings.TrimSpace(toolName))
}

// Store persists the per-tool aggregates.
type Store struct {
	db    *gorm.DB
	seeds config.RatingSeeds
}

func NewStore(db *gorm.DB, seeds config.RatingSeeds) *Store {
	return &Store{db: db, seeds: seeds}
}

// Get returns the aggregate for a tool, or ErrNotRated.
func (s *Store) Get(ctx context.Context, toolName string) (*Rating, error) {
	var r Rating
	err := s.db.WithContext(ctx).First(&r, "tool_name = ?", Key(toolName)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotRated
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Submit applies one vote in a single statement. A missing aggregate is
// created from the configured seed with the vote already applied; an existing
// one has both counters incremented in place, so concurrent votes for the same
// tool compound instead of overwriting each other.
func (s *Store) Submit(ctx context.Context, toolName string, stars int) (*Rating, error) {
	r := Rating{
		ToolName:   Key(toolName),
		Votes:      s.seeds.SeedVotes + 1,
		TotalScore: s.seeds.SeedScore + stars,
	}

	err := s.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "tool_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"votes":       gorm.Expr("votes + 1"),
				"total_score": gorm.Expr("total_score + ?", stars),
			}),
		},
		clause.Returning{},
	).Create(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

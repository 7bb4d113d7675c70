package search_service

import (
	"context"
	"log/slog"
	"strings"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	user_repository "pulsefeed-backend/internal/repository/user"
)

const defaultSearchLimit = 20

type SearchService struct {
	userRepo user_repository.Repository
	log      *logger.Logger
}

func NewSearchService(userRepo user_repository.Repository, log *logger.Logger) *SearchService {
	return &SearchService{userRepo: userRepo, log: log}
}

func (s *SearchService) SearchUsers(ctx context.Context, query model.UserSearchQuery) (*model.UserSearchPage, error) {
	query.Query = strings.TrimSpace(query.Query)
	if query.Query == "" {
		return &model.UserSearchPage{Users: []*model.UserSearchResult{}}, nil
	}
	if query.Limit <= 0 {
		query.Limit = defaultSearchLimit
	}

	rows, err := s.userRepo.Search(ctx, query)
	if err != nil {
		s.log.Error("User search failed", slog.String("query", query.Query), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	// A user matched by both the full-text and the trigram arm comes
	// back twice; fold the two rows into one result keeping both
	// scores.
	order := make([]string, 0, len(rows))
	merged := make(map[string]*model.UserSearchResult, len(rows))
	for _, row := range rows {
		result, seen := merged[row.UserID]
		if !seen {
			result = &model.UserSearchResult{UserID: row.UserID}
			merged[row.UserID] = result
			order = append(order, row.UserID)
		}
		if row.Rank != nil {
			result.Rank = row.Rank
		}
		if row.Similarity != nil {
			result.Similarity = row.Similarity
		}
	}

	page := &model.UserSearchPage{Users: make([]*model.UserSearchResult, 0, len(order))}
	if len(order) == 0 {
		return page, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, order)
	if err != nil {
		s.log.Error("Failed to load search results", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, id := range order {
		result := merged[id]
		u, ok := byID[id]
		if !ok {
			continue
		}
		result.Username = u.Username
		result.FullName = u.FullName
		result.ProfileImgURL = u.ProfileImgURL
		result.Score = bestScore(result.Rank, result.Similarity)
		page.Users = append(page.Users, result)

		if result.Rank != nil && (page.NextRank == nil || *result.Rank < *page.NextRank) {
			page.NextRank = result.Rank
		}
		if result.Similarity != nil && (page.NextSimilarity == nil || *result.Similarity < *page.NextSimilarity) {
			page.NextSimilarity = result.Similarity
		}
	}
	return page, nil
}

func bestScore(rank, similarity *float64) *float64 {
	switch {
	case rank == nil:
		return similarity
	case similarity == nil:
		return rank
	case *similarity > *rank:
		return similarity
	default:
		return rank
	}
}

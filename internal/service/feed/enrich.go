package feed_service

import (
	"context"
	"log/slog"
	"math"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/model"
)

// enrich joins authors, images, like counts and comment stances onto a
// page of posts. Each concern is one batched query over the page's id
// set; no per-post round trips.
func (s *FeedService) enrich(ctx context.Context, posts []*model.Post, viewerID string) ([]*model.FeedItem, error) {
	if len(posts) == 0 {
		return []*model.FeedItem{}, nil
	}

	postIDs := make([]string, 0, len(posts))
	userIDSet := make(map[string]struct{}, len(posts))
	categoryIDSet := make(map[string]struct{}, 4)
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		userIDSet[p.UserID] = struct{}{}
		categoryIDSet[p.CategoryID] = struct{}{}
	}

	users, err := s.userRepo.GetByIDs(ctx, setToSlice(userIDSet))
	if err != nil {
		s.log.Error("Feed author join failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	userByID := make(map[string]*model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, setToSlice(categoryIDSet))
	if err != nil {
		s.log.Error("Feed category join failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	categoryByID := make(map[string]*model.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	images, err := s.imageRepo.GetByPosts(ctx, postIDs)
	if err != nil {
		s.log.Error("Feed image join failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	imagesByPost := make(map[string][]model.FeedImage, len(posts))
	for _, img := range images {
		imagesByPost[img.PostID] = append(imagesByPost[img.PostID], model.FeedImage{
			URL:      img.URL,
			Position: img.Position,
		})
	}

	likes, err := s.likeRepo.GetByPosts(ctx, postIDs)
	if err != nil {
		s.log.Error("Feed like join failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	likeCount := make(map[string]int, len(posts))
	likedByViewer := make(map[string]bool, len(posts))
	for _, l := range likes {
		likeCount[l.PostID]++
		if l.UserID == viewerID {
			likedByViewer[l.PostID] = true
		}
	}

	stances, err := s.commentRepo.StanceByPosts(ctx, postIDs)
	if err != nil {
		s.log.Error("Feed stance join failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	stanceByPost := make(map[string]*model.CommentStance, len(stances))
	for _, st := range stances {
		stanceByPost[st.PostID] = st
	}

	items := make([]*model.FeedItem, 0, len(posts))
	for _, p := range posts {
		item := &model.FeedItem{
			PostID:             p.ID,
			UserID:             p.UserID,
			Title:              p.Title,
			Content:            p.Content,
			CategoryID:         p.CategoryID,
			CreatedAt:          p.CreatedAt.Time,
			Images:             imagesByPost[p.ID],
			LikesCount:         likeCount[p.ID],
			LikedByCurrentUser: likedByViewer[p.ID],
		}
		if item.Images == nil {
			item.Images = []model.FeedImage{}
		}
		if u, ok := userByID[p.UserID]; ok {
			item.Username = u.Username
			item.FullName = u.FullName
		}
		if c, ok := categoryByID[p.CategoryID]; ok {
			item.CategoryTitle = &c.Title
		}
		if st, ok := stanceByPost[p.ID]; ok {
			item.SupportCount = st.Support
			item.DenyCount = st.Deny
			item.CommentsCount = st.Support + st.Deny
			item.SupportPercentage, item.DenyPercentage = stancePercentages(st.Support, st.Deny)
		}
		items = append(items, item)
	}
	return items, nil
}

// stancePercentages splits 100% across support and deny, rounded to two
// decimals. A post with no comments reports 0/0 rather than dividing by
// zero.
func stancePercentages(support, deny int) (float64, float64) {
	total := support + deny
	if total == 0 {
		return 0, 0
	}
	s := round2(float64(support) / float64(total) * 100)
	d := round2(float64(deny) / float64(total) * 100)
	return s, d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

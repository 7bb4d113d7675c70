package feed_service

import "pulsefeed-backend/internal/model"

// mergeWithCreatorCap concatenates the bands in priority order while
// holding every author to at most maxPerCreator posts on the page.
// Capped posts are dropped, not deferred; later bands keep filling the
// page until total is reached.
func mergeWithCreatorCap(bands []band, total, maxPerCreator int) []*model.Post {
	merged := make([]*model.Post, 0, total)
	perCreator := make(map[string]int)
	for i := range bands {
		for _, p := range bands[i].posts {
			if len(merged) == total {
				return merged
			}
			if perCreator[p.UserID] >= maxPerCreator {
				continue
			}
			perCreator[p.UserID]++
			merged = append(merged, p)
		}
	}
	return merged
}

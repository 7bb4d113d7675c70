package feed_service

import (
	"hash/fnv"
	"math/rand"

	"pulsefeed-backend/internal/model"
)

// shufflePosts permutes posts in place using a generator seeded from the
// string seed. The same seed always yields the same permutation, which
// keeps a feed session stable across repeated requests.
func shufflePosts(posts []*model.Post, seed string) {
	if len(posts) < 2 {
		return
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	r.Shuffle(len(posts), func(i, j int) {
		posts[i], posts[j] = posts[j], posts[i]
	})
}

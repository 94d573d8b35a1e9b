package domain

import "time"

// MaxMessageLength is the longest message accepted, in runes.
const MaxMessageLength = 1000

// Post is a message on the feed. Likes holds the ids of the users who liked
// it; membership, not count, is what matters.
type Post struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	UserID    string    `json:"user_id"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether userID is in the likes set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

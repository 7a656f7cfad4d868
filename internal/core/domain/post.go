package domain

import "time"

// Post is a piece of content owned by exactly one user. AuthorID is set at
// creation and never reassigned.
type Post struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostView is a Post with its owner resolved to the public projection.
type PostView struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    PublicUser `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// View pairs p with its resolved author.
func (p *Post) View(author PublicUser) *PostView {
	return &PostView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    author,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

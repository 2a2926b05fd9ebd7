package models

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	nonWordChars = regexp.MustCompile(`[^\w ]+`)
	spaceRuns    = regexp.MustCompile(` +`)
)

// Slugify derives the advisory slug of a title: lowercased, non-word
// characters stripped and runs of spaces replaced with a hyphen.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonWordChars.ReplaceAllString(s, "")
	return spaceRuns.ReplaceAllString(s, "-")
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := ValidateStruct(p); err != nil {
		return err
	}
	if p.Category.ID == "" {
		return errors.New("category is required")
	}
	if p.Author.ID == "" {
		return errors.New("author is required")
	}
	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	if p.Image == "" {
		p.Image = DefaultImage
	}
	p.Slug = Slugify(p.Title)
}

// SetTitle changes the title and recomputes the slug when it differs.
func (p *Post) SetTitle(title string) {
	if title == p.Title && p.Slug != "" {
		return
	}
	p.Title = title
	p.Slug = Slugify(title)
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	p.Comments = append(p.Comments, comment)
	return nil
}

// FindComment returns the comment with the given id.
func (p *Post) FindComment(commentID string) (*Comment, bool) {
	for _, comment := range p.Comments {
		if comment.ID == commentID {
			return comment, true
		}
	}
	return nil, false
}

// RemoveComment removes a comment from the post
func (p *Post) RemoveComment(commentID string) error {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return errors.New("comment not found")
}

// CommentCount is the length of the comment sequence.
func (p *Post) CommentCount() int {
	return len(p.Comments)
}

// URL is the public path of the post.
func (p *Post) URL() string {
	return "/posts/" + p.Slug
}

// Collapsed returns a copy with every reference reduced to its id, which
// is the form the store persists.
func (p *Post) Collapsed() *Post {
	cp := *p
	cp.Author = p.Author.Collapse()
	cp.Category = p.Category.Collapse()
	cp.Comments = make([]*Comment, len(p.Comments))
	for i, c := range p.Comments {
		cc := *c
		cc.User = c.User.Collapse()
		cp.Comments[i] = &cc
	}
	return &cp
}

// MarshalJSON adds the derived commentCount and url fields.
func (p Post) MarshalJSON() ([]byte, error) {
	type post Post
	comments := p.Comments
	if comments == nil {
		comments = []*Comment{}
	}
	p.Comments = comments
	return json.Marshal(struct {
		post
		CommentCount int    `json:"commentCount"`
		URL          string `json:"url"`
	}{
		post:         post(p),
		CommentCount: len(comments),
		URL:          p.URL(),
	})
}

package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPost() *Post {
	return &Post{
		ID:        "p1",
		Title:     "Valid Title",
		Content:   "This is valid content",
		Category:  RefTo[CategorySummary]("c1"),
		Author:    RefTo[UserSummary]("u1"),
		CreatedAt: time.Now(),
	}
}

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Post)
		wantErr string
	}{
		{
			name:   "valid post",
			mutate: func(p *Post) {},
		},
		{
			name:    "empty title",
			mutate:  func(p *Post) { p.Title = "" },
			wantErr: "title is required",
		},
		{
			name:    "title too long",
			mutate:  func(p *Post) { p.Title = strings.Repeat("a", 101) },
			wantErr: "title cannot be more than 100 characters",
		},
		{
			name:   "title of exactly 100 characters",
			mutate: func(p *Post) { p.Title = strings.Repeat("é", 100) },
		},
		{
			name:    "empty content",
			mutate:  func(p *Post) { p.Content = "" },
			wantErr: "content is required",
		},
		{
			name:    "missing category",
			mutate:  func(p *Post) { p.Category = Reference[CategorySummary]{} },
			wantErr: "category is required",
		},
		{
			name:    "missing author",
			mutate:  func(p *Post) { p.Author = Reference[UserSummary]{} },
			wantErr: "author is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := validPost()
			tt.mutate(post)
			err := post.Validate()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":            "hello-world",
		"Go, Rust & C++!":        "go-rust-c",
		"  spaced   out  ":       "-spaced-out-",
		"snake_case stays":       "snake_case-stays",
		"Numbers 123 and Caps X": "numbers-123-and-caps-x",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Title: "Test Post", Content: "Test Content"}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	post.BeforeCreate(now)
	assert.Equal(t, now, post.CreatedAt)
	assert.Equal(t, now, post.UpdatedAt)
	assert.Equal(t, DefaultImage, post.Image)
	assert.Equal(t, "test-post", post.Slug)
}

func TestPostSetTitle(t *testing.T) {
	post := &Post{}
	post.SetTitle("First Title")
	assert.Equal(t, "first-title", post.Slug)

	post.SetTitle("Second Title")
	assert.Equal(t, "Second Title", post.Title)
	assert.Equal(t, "second-title", post.Slug)
}

func TestPostCommentManagement(t *testing.T) {
	post := validPost()

	t.Run("add comment", func(t *testing.T) {
		comment := &Comment{ID: "c1", User: RefTo[UserSummary]("u2"), Text: "Test Comment"}
		err := post.AddComment(comment)
		assert.NoError(t, err)
		assert.Equal(t, 1, post.CommentCount())

		found, ok := post.FindComment("c1")
		assert.True(t, ok)
		assert.Same(t, comment, found)
	})

	t.Run("add nil comment", func(t *testing.T) {
		err := post.AddComment(nil)
		assert.Error(t, err)
	})

	t.Run("remove existing comment", func(t *testing.T) {
		err := post.RemoveComment("c1")
		assert.NoError(t, err)
		assert.Equal(t, 0, post.CommentCount())
	})

	t.Run("remove non-existent comment", func(t *testing.T) {
		err := post.RemoveComment("missing")
		assert.Error(t, err)
	})
}

func TestPostCollapsed(t *testing.T) {
	post := validPost()
	post.Author = Expand(UserSummary{ID: "u1", Name: "Ada"})
	post.Category = Expand(CategorySummary{ID: "c1", Name: "Tech"})
	post.Comments = []*Comment{{ID: "k1", User: Expand(UserSummary{ID: "u2", Name: "Bob"}), Text: "hi"}}

	collapsed := post.Collapsed()
	assert.False(t, collapsed.Author.IsExpanded())
	assert.False(t, collapsed.Category.IsExpanded())
	assert.False(t, collapsed.Comments[0].User.IsExpanded())
	assert.Equal(t, "u2", collapsed.Comments[0].User.ID)

	// the original keeps its expansions
	assert.True(t, post.Author.IsExpanded())
	assert.True(t, post.Comments[0].User.IsExpanded())
}

func TestPostJSON(t *testing.T) {
	post := validPost()
	post.Slug = "valid-title"
	post.Author = Expand(UserSummary{ID: "u1", Name: "Ada"})
	post.Comments = []*Comment{{ID: "k1", User: RefTo[UserSummary]("u2"), Text: "hi"}}

	data, err := json.Marshal(post)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(1), raw["commentCount"])
	assert.Equal(t, "/posts/valid-title", raw["url"])
	assert.Equal(t, "c1", raw["category"])
	assert.Equal(t, map[string]interface{}{"id": "u1", "name": "Ada"}, raw["author"])

	var decoded Post
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Ada", decoded.Author.Expanded.Name)
	assert.Equal(t, "c1", decoded.Category.ID)
	assert.Equal(t, "u2", decoded.Comments[0].User.ID)
}

func TestPostJSONEmptyComments(t *testing.T) {
	post := validPost()
	data, err := json.Marshal(post)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"comments":[]`)
	assert.Contains(t, string(data), `"commentCount":0`)
}

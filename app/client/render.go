package client

import (
	"fmt"
	"io"
	"text/tabwriter"

	"inkwell/app/models"
)

const dateLayout = "2006-01-02"

// RenderPosts writes a table of posts to w.
func RenderPosts(w io.Writer, posts []*models.Post) error {
	if len(posts) == 0 {
		_, err := fmt.Fprintln(w, "No posts found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tAUTHOR\tCATEGORY\tCOMMENTS\tCREATED")
	for _, post := range posts {
		author, _ := AuthorInfo(post.Author)
		category := CategoryName(post.Category)
		if category == "" {
			category = uncategorized
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			post.Title, author, category, post.CommentCount(), post.CreatedAt.Format(dateLayout))
	}
	return tw.Flush()
}

// RenderPost writes a post with its comments to w.
func RenderPost(w io.Writer, post *models.Post) error {
	author, initial := AuthorInfo(post.Author)
	category := CategoryName(post.Category)
	if category == "" {
		category = uncategorized
	}

	if _, err := fmt.Fprintf(w, "%s\n[%s] %s in %s on %s\n\n%s\n",
		post.Title, initial, author, category, post.CreatedAt.Format(dateLayout), post.Content); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nComments (%d)\n", post.CommentCount()); err != nil {
		return err
	}
	for _, comment := range post.Comments {
		name, _ := AuthorInfo(comment.User)
		if _, err := fmt.Fprintf(w, "- %s (%s): %s\n", name, comment.CreatedAt.Format(dateLayout), comment.Text); err != nil {
			return err
		}
	}
	return nil
}

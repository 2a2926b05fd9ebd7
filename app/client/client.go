// Package client is the data layer used by consumers of the blog API. It
// keeps the caller's credential in an explicit Session and decodes the
// response envelope into typed values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"inkwell/app/models"
	"inkwell/app/services"
)

// ErrUnauthenticated matches API errors caused by a missing or rejected
// credential.
var ErrUnauthenticated = errors.New("not authenticated")

// APIError is a failure envelope returned by the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// Is matches ErrUnauthenticated for 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthenticated && e.Status == http.StatusUnauthorized
}

// Pagination describes the page of a listing.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Count      *int            `json:"count"`
	Token      string          `json:"token"`
	User       *models.User    `json:"user"`
	Pagination *Pagination     `json:"pagination"`
}

// PostPage is one page of posts.
type PostPage struct {
	Posts      []*models.Post
	Pagination Pagination
}

// ListParams narrows a post listing. Zero values use the server defaults.
type ListParams struct {
	Page       int
	PerPage    int
	AuthorID   string
	CategoryID string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Client calls the blog API on behalf of a session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a Client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api". A nil session gets a fresh one.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// do sends a request and decodes the envelope. Any 401 clears the session.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
	}
	if resp.StatusCode >= http.StatusBadRequest || (decodeErr == nil && !env.Success) {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding %s %s: %w", method, path, decodeErr)
	}
	return &env, nil
}

func decodeData(env *envelope, v interface{}) error {
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	if env.Token == "" || env.User == nil {
		return nil, errors.New("response carries no credential")
	}
	c.session.Set(env.Token, env.User)
	return env.User, nil
}

// Register creates an account and signs in as it.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	return c.authenticate(ctx, "/auth/register", services.RegisterInput{Name: name, Email: email, Password: password})
}

// Login signs in.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

// Logout forgets the credential. The API keeps no server side session.
func (c *Client) Logout() {
	c.session.Clear()
}

// Me returns the signed in user as the API sees it.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, errors.New("response carries no user")
	}
	return env.User, nil
}

// ListPosts fetches one page of posts.
func (c *Client) ListPosts(ctx context.Context, params ListParams) (*PostPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.AuthorID != "" {
		query.Set("author", params.AuthorID)
	}
	if params.CategoryID != "" {
		query.Set("category", params.CategoryID)
	}
	path := "/posts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	page := &PostPage{}
	if err := decodeData(env, &page.Posts); err != nil {
		return nil, err
	}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

// ListAllPosts walks every page of the post listing, newest first.
func (c *Client) ListAllPosts(ctx context.Context) ([]*models.Post, error) {
	var all []*models.Post
	seen := make(map[string]bool)
	for pageNo := 1; ; pageNo++ {
		page, err := c.ListPosts(ctx, ListParams{Page: pageNo})
		if err != nil {
			return nil, err
		}
		// Posts created mid-walk shift later pages; skip ones already seen.
		for _, post := range page.Posts {
			if seen[post.ID] {
				continue
			}
			seen[post.ID] = true
			all = append(all, post)
		}
		if len(page.Posts) == 0 || pageNo*page.Pagination.PerPage >= page.Pagination.Total {
			return all, nil
		}
	}
}

// PostsByCategory fetches every post and keeps those whose category name
// matches name, ignoring case.
func (c *Client) PostsByCategory(ctx context.Context, name string) ([]*models.Post, error) {
	posts, err := c.ListAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByCategory(posts, name), nil
}

// GetPost fetches one post with its comments.
func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return c.post(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil)
}

// CreatePost creates a post as the signed in user.
func (c *Client) CreatePost(ctx context.Context, in services.PostInput) (*models.Post, error) {
	return c.post(ctx, http.MethodPost, "/posts", in)
}

// UpdatePost applies a partial update.
func (c *Client) UpdatePost(ctx context.Context, id string, in services.PostInput) (*models.Post, error) {
	return c.post(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), in)
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil)
	return err
}

// AddComment comments on a post and returns the updated post.
func (c *Client) AddComment(ctx context.Context, postID, text string) (*models.Post, error) {
	return c.post(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comments", map[string]string{"text": text})
}

// RemoveComment deletes a comment and returns the updated post.
func (c *Client) RemoveComment(ctx context.Context, postID, commentID string) (*models.Post, error) {
	return c.post(ctx, http.MethodDelete, "/posts/"+url.PathEscape(postID)+"/comments/"+url.PathEscape(commentID), nil)
}

func (c *Client) post(ctx context.Context, method, path string, body interface{}) (*models.Post, error) {
	env, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := decodeData(env, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]*models.Category, error) {
	env, err := c.do(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	var categories []*models.Category
	if err := decodeData(env, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, in services.CategoryInput) (*models.Category, error) {
	return c.category(ctx, http.MethodPost, "/categories", in)
}

// GetCategory fetches one category.
func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return c.category(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil)
}

// UpdateCategory edits a category. Requires the admin role.
func (c *Client) UpdateCategory(ctx context.Context, id string, in services.CategoryInput) (*models.Category, error) {
	return c.category(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), in)
}

// DeleteCategory removes a category. Requires the admin role.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) category(ctx context.Context, method, path string, body interface{}) (*models.Category, error) {
	env, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := decodeData(env, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

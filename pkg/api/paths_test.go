package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/samvad-hq/postlist/pkg/domain"
	"github.com/samvad-hq/postlist/pkg/httpclient"
	"github.com/stretchr/testify/assert"
)

type okResponse struct{ body string }

func (r okResponse) Body() []byte        { return []byte(r.body) }
func (r okResponse) StatusCode() int     { return http.StatusOK }
func (r okResponse) Header() http.Header { return http.Header{} }
func (r okResponse) URL() string         { return "" }

// recordingClient captures requests without touching the network.
type recordingClient struct {
	reqs []httpclient.Request
	body string
}

func (c *recordingClient) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	c.reqs = append(c.reqs, req)
	return okResponse{body: c.body}, nil
}

func TestOperationsMapToPathsAndVerbs(t *testing.T) {
	ctx := context.Background()
	post := domain.PostData{UserID: 1, Title: "t", Body: "b"}
	comment := domain.CommentData{PostID: 3, Name: "n", Email: "e", Body: "b"}

	cases := []struct {
		name   string
		body   string
		call   func(a *API) error
		method string
		path   string
		query  map[string]string
		sent   any
	}{
		{"GetAll", `[]`, func(a *API) error { _, err := a.Users.GetAll(ctx); return err }, http.MethodGet, "/users", nil, nil},
		{"GetSingleUser", `{}`, func(a *API) error { _, err := a.Users.GetSingleUser(ctx, 4); return err }, http.MethodGet, "/users/4", nil, nil},
		{"GetPostByID", `{}`, func(a *API) error { _, err := a.Posts.GetPostByID(ctx, 9); return err }, http.MethodGet, "/posts/9", nil, nil},
		{"GetPostsByUserID", `[]`, func(a *API) error { _, err := a.Posts.GetPostsByUserID(ctx, 5); return err }, http.MethodGet, "/posts", map[string]string{"userId": "5"}, nil},
		{"AddPost", `{}`, func(a *API) error { _, err := a.Posts.AddPost(ctx, post); return err }, http.MethodPost, "/posts", nil, post},
		{"EditPost", `{}`, func(a *API) error { _, err := a.Posts.EditPost(ctx, post, 9); return err }, http.MethodPatch, "/posts/9", nil, post},
		{"DeletePost", `{}`, func(a *API) error { return a.Posts.DeletePost(ctx, 9) }, http.MethodDelete, "/posts/9", nil, nil},
		{"GetCommentsByPostID", `[]`, func(a *API) error { _, err := a.Comments.GetCommentsByPostID(ctx, 7); return err }, http.MethodGet, "/comments", map[string]string{"postId": "7"}, nil},
		{"AddComment", `{}`, func(a *API) error { _, err := a.Comments.AddComment(ctx, comment); return err }, http.MethodPost, "/comments", nil, comment},
		{"EditComment", `{}`, func(a *API) error { _, err := a.Comments.EditComment(ctx, comment, 2); return err }, http.MethodPatch, "/comments/2", nil, comment},
		{"DeleteComment", ``, func(a *API) error { return a.Comments.DeleteComment(ctx, 2) }, http.MethodDelete, "/comments/2", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &recordingClient{body: tc.body}
			assert.NoError(t, tc.call(New(client)))
			if assert.Len(t, client.reqs, 1) {
				req := client.reqs[0]
				assert.Equal(t, tc.method, req.Method)
				assert.Equal(t, tc.path, req.Path)
				assert.Equal(t, tc.query, req.Query)
				assert.Equal(t, tc.sent, req.Body)
			}
		})
	}
}

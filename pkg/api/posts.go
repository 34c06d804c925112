package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/samvad-hq/postlist/pkg/domain"
	"github.com/samvad-hq/postlist/pkg/httpclient"
)

const postsPath = "/posts"

// PostsAPI reads and writes posts.
type PostsAPI struct {
	client httpclient.Client
}

func NewPostsAPI(client httpclient.Client) *PostsAPI {
	return &PostsAPI{client: client}
}

func (p *PostsAPI) GetPostByID(ctx context.Context, id int) (domain.Post, error) {
	return httpclient.Get[domain.Post](ctx, p.client, postPath(id))
}

// GetPostsByUserID lists posts owned by userID.
func (p *PostsAPI) GetPostsByUserID(ctx context.Context, userID int) ([]domain.Post, error) {
	return httpclient.Get[[]domain.Post](ctx, p.client, postsPath,
		httpclient.WithQuery("userId", strconv.Itoa(userID)))
}

// AddPost creates a post; the backend assigns its id.
func (p *PostsAPI) AddPost(ctx context.Context, post domain.PostData) (domain.Post, error) {
	return httpclient.Post[domain.Post](ctx, p.client, postsPath, post)
}

// EditPost applies post's fields to the post with the given id.
func (p *PostsAPI) EditPost(ctx context.Context, post domain.PostData, id int) (domain.Post, error) {
	return httpclient.Patch[domain.Post](ctx, p.client, postPath(id), post)
}

func (p *PostsAPI) DeletePost(ctx context.Context, id int) error {
	return httpclient.Send(ctx, p.client, http.MethodDelete, postPath(id), nil)
}

func postPath(id int) string {
	return fmt.Sprintf("%s/%d", postsPath, id)
}

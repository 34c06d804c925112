package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/samvad-hq/postlist/pkg/domain"
	"github.com/samvad-hq/postlist/pkg/httpclient"
)

const commentsPath = "/comments"

// CommentsAPI reads and writes comments.
type CommentsAPI struct {
	client httpclient.Client
}

func NewCommentsAPI(client httpclient.Client) *CommentsAPI {
	return &CommentsAPI{client: client}
}

// GetCommentsByPostID lists comments attached to postID.
func (c *CommentsAPI) GetCommentsByPostID(ctx context.Context, postID int) ([]domain.Comment, error) {
	return httpclient.Get[[]domain.Comment](ctx, c.client, commentsPath,
		httpclient.WithQuery("postId", strconv.Itoa(postID)))
}

func (c *CommentsAPI) AddComment(ctx context.Context, data domain.CommentData) (domain.Comment, error) {
	return httpclient.Post[domain.Comment](ctx, c.client, commentsPath, data)
}

func (c *CommentsAPI) EditComment(ctx context.Context, data domain.CommentData, id int) (domain.Comment, error) {
	return httpclient.Patch[domain.Comment](ctx, c.client, commentPath(id), data)
}

func (c *CommentsAPI) DeleteComment(ctx context.Context, id int) error {
	return httpclient.Send(ctx, c.client, http.MethodDelete, commentPath(id), nil)
}

func commentPath(id int) string {
	return fmt.Sprintf("%s/%d", commentsPath, id)
}

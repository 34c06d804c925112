package feed

import (
	"context"

	"github.com/samvad-hq/postlist/pkg/domain"
)

// UserReader is the subset of api.UsersAPI the feed needs.
type UserReader interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetSingleUser(ctx context.Context, id int) (domain.User, error)
}

// PostReader is the subset of api.PostsAPI the feed needs.
type PostReader interface {
	GetPostByID(ctx context.Context, id int) (domain.Post, error)
	GetPostsByUserID(ctx context.Context, userID int) ([]domain.Post, error)
}

// CommentReader is the subset of api.CommentsAPI the feed needs.
type CommentReader interface {
	GetCommentsByPostID(ctx context.Context, postID int) ([]domain.Comment, error)
}

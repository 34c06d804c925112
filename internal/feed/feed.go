package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/postlist/internal/logger"
	"github.com/samvad-hq/postlist/pkg/api"
	"github.com/samvad-hq/postlist/pkg/domain"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Thread is a post together with its comments.
type Thread struct {
	Post     domain.Post      `json:"post" yaml:"post"`
	Comments []domain.Comment `json:"comments" yaml:"comments"`
}

// Feed is everything shown for one selected user.
type Feed struct {
	User    domain.User `json:"user" yaml:"user"`
	Threads []Thread    `json:"threads" yaml:"threads"`
}

// Service assembles user-facing views from the resource groups.
type Service struct {
	users       UserReader
	posts       PostReader
	comments    CommentReader
	log         logger.Logger
	concurrency int
}

// NewService wires a feed service over the given readers.
func NewService(users UserReader, posts PostReader, comments CommentReader, log logger.Logger) *Service {
	return &Service{
		users:       users,
		posts:       posts,
		comments:    comments,
		log:         logger.Ensure(log),
		concurrency: defaultConcurrency,
	}
}

// NewFromAPI wires a feed service over every group of a.
func NewFromAPI(a *api.API, log logger.Logger) *Service {
	return NewService(a.Users, a.Posts, a.Comments, log)
}

// Users lists the users a feed can be opened for.
func (s *Service) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UserFeed loads a user, their posts and every post's comments.
// Any failed call fails the whole feed.
func (s *Service) UserFeed(ctx context.Context, userID int) (Feed, error) {
	start := time.Now()

	var (
		user  domain.User
		posts []domain.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if user, err = s.users.GetSingleUser(gctx, userID); err != nil {
			return fmt.Errorf("get user %d: %w", userID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if posts, err = s.posts.GetPostsByUserID(gctx, userID); err != nil {
			return fmt.Errorf("list posts of user %d: %w", userID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Feed{}, err
	}

	threads, err := s.threads(ctx, posts)
	if err != nil {
		return Feed{}, err
	}

	s.log.InfoObj("user feed loaded", "feed_meta", map[string]any{
		"user_id":    userID,
		"posts":      len(threads),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return Feed{User: user, Threads: threads}, nil
}

// PostThread loads one post with its comments.
func (s *Service) PostThread(ctx context.Context, postID int) (Thread, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return Thread{}, fmt.Errorf("get post %d: %w", postID, err)
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return Thread{}, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return Thread{Post: post, Comments: comments}, nil
}

// threads fetches comments for posts concurrently, preserving post order.
func (s *Service) threads(ctx context.Context, posts []domain.Post) ([]Thread, error) {
	out := make([]Thread, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, post := range posts {
		g.Go(func() error {
			comments, err := s.comments.GetCommentsByPostID(gctx, post.ID)
			if err != nil {
				return fmt.Errorf("list comments of post %d: %w", post.ID, err)
			}
			out[i] = Thread{Post: post, Comments: comments}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

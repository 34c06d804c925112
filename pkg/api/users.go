package api

import (
	"context"
	"fmt"

	"github.com/samvad-hq/postlist/pkg/domain"
	"github.com/samvad-hq/postlist/pkg/httpclient"
)

const usersPath = "/users"

// UsersAPI reads users. Users are never modified through this client.
type UsersAPI struct {
	client httpclient.Client
}

func NewUsersAPI(client httpclient.Client) *UsersAPI {
	return &UsersAPI{client: client}
}

// GetAll lists every user.
func (u *UsersAPI) GetAll(ctx context.Context) ([]domain.User, error) {
	return httpclient.Get[[]domain.User](ctx, u.client, usersPath)
}

// GetSingleUser fetches the user with the given id.
func (u *UsersAPI) GetSingleUser(ctx context.Context, id int) (domain.User, error) {
	return httpclient.Get[domain.User](ctx, u.client, fmt.Sprintf("%s/%d", usersPath, id))
}

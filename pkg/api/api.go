// Package api exposes one typed group of calls per backend resource.
// Each method maps its arguments onto a path and verb and delegates to an
// httpclient.Client; failures are returned exactly as the client reports them.
package api

import "github.com/samvad-hq/postlist/pkg/httpclient"

// API bundles the resource groups that share one transport.
type API struct {
	Users    *UsersAPI
	Posts    *PostsAPI
	Comments *CommentsAPI
}

// New wires every resource group to client.
func New(client httpclient.Client) *API {
	return &API{
		Users:    NewUsersAPI(client),
		Posts:    NewPostsAPI(client),
		Comments: NewCommentsAPI(client),
	}
}

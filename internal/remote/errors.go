package remote

import "errors"

var (
	ErrTransport        = errors.New("remote api unreachable")
	ErrUnauthorized     = errors.New("remote api rejected credentials")
	ErrUnexpectedStatus = errors.New("remote api returned unexpected status")
	ErrInvalidResponse  = errors.New("remote api returned invalid response")
	ErrGraphQL          = errors.New("remote api returned graphql errors")
	ErrNotFound         = errors.New("remote resource not found")
)

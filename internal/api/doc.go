// Package api contains the HTTP handlers that sit behind the
// middleware pipeline and the mapping from service errors to client
// responses.
package api

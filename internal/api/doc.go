// Package api handles incoming HTTP requests, request validation, and
// response formatting. Handlers translate HTTP concerns into calls on the
// task and user services and map the domain error taxonomy onto status
// codes.
package api

// The service layer sits between the HTTP handlers and the stores. It owns
// transaction boundaries, applies domain validation before anything reaches
// the database, and turns store failures into errors that still match the
// domain sentinels (domain.ErrNotFound, domain.ErrConflict, ...).
//
// TaskService scopes every call by the requesting user's id. UserService
// registers users, exchanges credentials for access tokens and revokes them.
package service

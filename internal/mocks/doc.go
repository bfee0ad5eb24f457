// Package mocks provides centralized mock implementations for testing.
//
// Most mocks follow the same shape: a function field per interface method
// (CreateFn, ListFn, ...) that wins when set, and plain fields that drive a
// default implementation otherwise. The store mocks keep their data in maps
// so service and handler tests can run full flows without a database.
// TestifyMockTokenStatusStore is the exception; it embeds testify's mock.Mock
// for tests that assert on exact calls.
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	tokens := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, userID int64) (*auth.Token, error) {
//	        return &auth.Token{Value: "mocked-token", ID: "jti-1"}, nil
//	    },
//	}
package mocks

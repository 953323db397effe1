package session

import "context"

type ctxKey struct{}

// WithContext returns a copy of ctx carrying sess.
func WithContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session stored by WithContext, or nil.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKey{}).(*Session)
	return sess
}

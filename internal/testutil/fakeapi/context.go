package fakeapi

import (
	"context"
	"net/http"
)

func contextWithBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyFrom(r *http.Request) map[string]any {
	body, _ := r.Context().Value(bodyKey{}).(map[string]any)
	if body == nil {
		body = map[string]any{}
	}
	return body
}

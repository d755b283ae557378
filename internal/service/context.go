package service

import (
	"context"

	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
)

func withFunction(ctx context.Context, function string) context.Context {
	return ctxutil.WithFunction(ctx, "service", function)
}

package svcctx

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackzampolin/casebundle/internal/bundle"
	"github.com/jackzampolin/casebundle/internal/home"
)

func TestExtractors(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		if ServicesFrom(ctx) != nil || CompilerFrom(ctx) != nil || CasesFrom(ctx) != nil ||
			ConfigStoreFrom(ctx) != nil || ConfigFrom(ctx) != nil || LoggerFrom(ctx) != nil || HomeFrom(ctx) != nil {
			t.Error("expected nil services from empty context")
		}
	})

	t.Run("with services", func(t *testing.T) {
		h, _ := home.New(t.TempDir())
		s := &Services{
			Compiler: bundle.New(bundle.Config{}),
			Logger:   slog.Default(),
			Home:     h,
		}
		ctx := WithServices(context.Background(), s)
		if ServicesFrom(ctx) != s {
			t.Error("ServicesFrom returned a different struct")
		}
		if CompilerFrom(ctx) != s.Compiler {
			t.Error("CompilerFrom mismatch")
		}
		if LoggerFrom(ctx) != s.Logger {
			t.Error("LoggerFrom mismatch")
		}
		if HomeFrom(ctx) != h {
			t.Error("HomeFrom mismatch")
		}
		if CasesFrom(ctx) != nil {
			t.Error("CasesFrom should be nil when unset")
		}
	})
}

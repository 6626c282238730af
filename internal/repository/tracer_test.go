package repository

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

func TestQueryTracer(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"ok", nil, `"level":"debug"`},
		{"failed", errors.New("boom"), `"level":"error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tr := newQueryTracer(zerolog.New(&buf))
			ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
			tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: tt.err})

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("TraceQueryEnd() level missing in %s", out)
			}
			if !strings.Contains(out, `"sql":"SELECT 1"`) {
				t.Errorf("TraceQueryEnd() sql missing in %s", out)
			}
		})
	}
}

package integration

import (
	"context"
	"io"
	"strings"
	"testing"

	"faidx/internal/app"
)

func TestCancelledBeforeStartExit130(t *testing.T) {
	fa := write(t, "big.fa", ">chr1\n"+strings.Repeat("ACGTACGTAC\n", 1<<14))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := app.RunContext(ctx, []string{fa, "chr1:1-100"}, io.Discard, io.Discard); code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}

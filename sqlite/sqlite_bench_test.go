package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagedoc"
	"github.com/fwojciec/pagedoc/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreatePublication measures recording one publication per
// published page against a file-backed database.
func BenchmarkCreatePublication(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewPublicationService(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pub := &pagedoc.Publication{
			SourceURL:   fmt.Sprintf("https://example.com/page%d", i),
			DocumentID:  fmt.Sprintf("doc-%d", i),
			Title:       "example.com",
			Elements:    i % 50,
			Operations:  i % 80,
			ContentHash: fmt.Sprintf("%016x", i),
		}
		if err := svc.CreatePublication(ctx, pub); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindPublications measures the history lookup done before each
// publish when unchanged pages are skipped.
func BenchmarkFindPublications(b *testing.B) {
	const pages = 500

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewPublicationService(db)
	ctx := context.Background()
	for i := 0; i < pages; i++ {
		require.NoError(b, svc.CreatePublication(ctx, &pagedoc.Publication{
			SourceURL:  fmt.Sprintf("https://example.com/page%d", i%50),
			DocumentID: fmt.Sprintf("doc-%d", i),
		}))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src := fmt.Sprintf("https://example.com/page%d", i%50)
		if _, err := svc.FindPublications(ctx, pagedoc.PublicationFilter{SourceURL: &src, Limit: 1}); err != nil {
			b.Fatal(err)
		}
	}
}

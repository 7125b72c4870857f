package store

import (
	"context"
	"testing"

	"tripbook/internal/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	st, mem := newTestStore(t)
	ctx := context.Background()

	if _, err := st.Exec(ctx, "INSERT INTO companies (name) VALUES (?)", "Kept Coaches"); err != nil {
		t.Fatalf("insert before export: %v", err)
	}

	image, err := st.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(image) == 0 {
		t.Fatalf("exported image is empty")
	}

	if _, err := st.Exec(ctx, "INSERT INTO companies (name) VALUES (?)", "Dropped Coaches"); err != nil {
		t.Fatalf("insert after export: %v", err)
	}

	putsBefore := mem.Puts()
	if err := st.ImportSnapshot(ctx, image); err != nil {
		t.Fatalf("import: %v", err)
	}

	// Import is a full replace back to the exported state.
	if got := countRows(t, st, "SELECT COUNT(*) FROM companies WHERE name = ?", "Kept Coaches"); got != 1 {
		t.Fatalf("pre-export row missing after import, got %d", got)
	}
	if got := countRows(t, st, "SELECT COUNT(*) FROM companies WHERE name = ?", "Dropped Coaches"); got != 0 {
		t.Fatalf("post-export row survived import, got %d", got)
	}

	// The replacing image is persisted immediately.
	if mem.Puts() != putsBefore+1 {
		t.Fatalf("import not persisted, puts=%d want %d", mem.Puts(), putsBefore+1)
	}

	// Foreign-key enforcement is re-enabled on the imported image.
	if _, err := st.Exec(ctx, "INSERT INTO passengers (trip_id, name) VALUES (?, ?)", int64(99999), "Nobody"); !domain.IsConstraint(err) {
		t.Fatalf("foreign keys not enforced after import: %v", err)
	}
}

func TestExportBypassesBackingStore(t *testing.T) {
	st, mem := newTestStore(t)
	before := mem.Puts()

	if _, err := st.ExportSnapshot(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if mem.Puts() != before {
		t.Fatalf("manual export touched the backing store")
	}
}

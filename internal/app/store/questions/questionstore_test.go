package questionstore_test

import (
	"testing"

	questionstore "github.com/vedamschool/dsahub/internal/app/store/questions"
	"github.com/vedamschool/dsahub/internal/domain/models"
	"github.com/vedamschool/dsahub/internal/testutil"
)

func TestStore_InsertAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	q, err := store.Insert(ctx, models.Question{
		Title:      "  Two Sum ",
		Topic:      "Arrays",
		Difficulty: "Easy",
		ClassDate:  "2026-08-20",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if q.Title != "Two Sum" {
		t.Errorf("title not trimmed: %q", q.Title)
	}
	if q.Topic != "arrays" {
		t.Errorf("topic not normalized: %q", q.Topic)
	}

	got, err := store.GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Two Sum" {
		t.Errorf("GetByID title: %q", got.Title)
	}
}

func TestStore_List_TopicFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateQuestion(ctx, "Two Sum", "arrays", "Easy")
	fixtures.CreateQuestion(ctx, "Climbing Stairs", "dp", "Easy")
	fixtures.CreateQuestion(ctx, "Coin Change", "dp", "Medium")

	page, err := store.List(ctx, "dp", "", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Questions) != 2 {
		t.Fatalf("dp questions: got %d, want 2", len(page.Questions))
	}
	for _, q := range page.Questions {
		if q.Topic != "dp" {
			t.Errorf("unexpected topic %q in filtered list", q.Topic)
		}
	}
}

func TestStore_List_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Two pages' worth plus a few, with distinct class dates to page over.
	total := 30
	for i := 0; i < total; i++ {
		day := byte('0' + i%10)
		date := "2026-07-" + string([]byte{'0' + byte(i/10), day})
		if _, err := store.Insert(ctx, models.Question{
			Title:      "Q",
			Topic:      "arrays",
			Difficulty: "Easy",
			ClassDate:  date,
		}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	first, err := store.List(ctx, "", "", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(first.Questions) != 25 {
		t.Fatalf("first page size: got %d, want 25", len(first.Questions))
	}
	if !first.HasNext || first.HasPrev {
		t.Errorf("first page flags: HasNext=%v HasPrev=%v", first.HasNext, first.HasPrev)
	}

	second, err := store.List(ctx, "", "", first.NextCursor)
	if err != nil {
		t.Fatalf("List (page 2) failed: %v", err)
	}
	if len(second.Questions) != total-25 {
		t.Fatalf("second page size: got %d, want %d", len(second.Questions), total-25)
	}
	if second.HasNext || !second.HasPrev {
		t.Errorf("second page flags: HasNext=%v HasPrev=%v", second.HasNext, second.HasPrev)
	}

	// No overlap between pages.
	seen := map[string]bool{}
	for _, q := range first.Questions {
		seen[q.ID.Hex()] = true
	}
	for _, q := range second.Questions {
		if seen[q.ID.Hex()] {
			t.Errorf("question %s appears on both pages", q.ID.Hex())
		}
	}
}

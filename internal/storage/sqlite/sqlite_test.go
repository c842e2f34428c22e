package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Bills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateBill generates IDs and title", func(t *testing.T) {
		bill := &models.Bill{
			OwnerID: "owner-1",
			Diners:  []string{"Alice", "Bob"},
			Dishes: []models.Dish{
				{Name: "Pizza", PriceCents: 2000, Diners: []int{0, 1}},
				{Name: "Beer", PriceCents: 1000, Diners: []int{1}},
			},
		}

		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.Title != "Split with Alice, Bob" {
			t.Errorf("Expected generated title, got %q", bill.Title)
		}
		if bill.CreatedAt == 0 || bill.UpdatedAt != bill.CreatedAt {
			t.Errorf("Expected timestamps to be set, got created=%d updated=%d", bill.CreatedAt, bill.UpdatedAt)
		}
		for _, dish := range bill.Dishes {
			if dish.ID == "" {
				t.Errorf("Expected dish %q to get an ID", dish.Name)
			}
			if dish.PriceMode != models.PriceModeTotal {
				t.Errorf("Expected dish %q to default to total pricing, got %q", dish.Name, dish.PriceMode)
			}
		}
	})

	t.Run("GetBill preserves order and every field", func(t *testing.T) {
		receipt := int64(7025)
		original := &models.Bill{
			OwnerID: "owner-1",
			Title:   "Test Dinner",
			// Out of alphabetical order on purpose, blank name kept.
			Diners: []string{"Zoe", "", "Charlie", "Alice"},
			Dishes: []models.Dish{
				{Name: "Steak", Quantity: 1, PriceCents: 3000, PriceMode: models.PriceModeTotal, Diners: []int{2}},
				{Name: "Oysters", Quantity: 6, PriceCents: 350, PriceMode: models.PriceModeEach, Diners: []int{3, 0}},
				{Name: "Bread", Quantity: 1, PriceCents: 0, PriceMode: models.PriceModeTotal, Diners: []int{}},
			},
			TaxCents:          575,
			TipCents:          900,
			FeesCents:         150,
			ReceiptTotalCents: &receipt,
			PayerID:           "Charlie",
		}

		if err := store.CreateBill(ctx, original); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		got, err := store.GetBill(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}

		if !reflect.DeepEqual(got, original) {
			t.Errorf("GetBill mismatch\n got: %+v\nwant: %+v", got, original)
		}
	})

	t.Run("GetBill without receipt total", func(t *testing.T) {
		bill := &models.Bill{OwnerID: "owner-1", Title: "No receipt"}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.ReceiptTotalCents != nil {
			t.Errorf("Expected no receipt total, got %d", *got.ReceiptTotalCents)
		}
		if len(got.Diners) != 0 || len(got.Dishes) != 0 {
			t.Errorf("Expected empty bill, got %d diners and %d dishes", len(got.Diners), len(got.Dishes))
		}
	})

	t.Run("GetBill returns ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := store.GetBill(ctx, "non-existent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateBill replaces contents", func(t *testing.T) {
		bill := &models.Bill{
			OwnerID: "owner-1",
			Title:   "Lunch",
			Diners:  []string{"Alice", "Bob", "Charlie"},
			Dishes: []models.Dish{
				{Name: "Soup", PriceCents: 800, Diners: []int{0, 1, 2}},
				{Name: "Cake", PriceCents: 600, Diners: []int{2}},
			},
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if err := bill.RemoveDiner(1); err != nil {
			t.Fatalf("RemoveDiner failed: %v", err)
		}
		bill.Dishes = bill.Dishes[:1]
		bill.TipCents = 300

		if err := store.UpdateBill(ctx, bill); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if !reflect.DeepEqual(got.Diners, []string{"Alice", "Charlie"}) {
			t.Errorf("Diners = %v", got.Diners)
		}
		if len(got.Dishes) != 1 || !reflect.DeepEqual(got.Dishes[0].Diners, []int{0, 1}) {
			t.Errorf("Dishes = %+v", got.Dishes)
		}
		if got.TipCents != 300 {
			t.Errorf("TipCents = %d, want 300", got.TipCents)
		}
	})

	t.Run("UpdateBill returns ErrNotFound for unknown ID", func(t *testing.T) {
		err := store.UpdateBill(ctx, &models.Bill{ID: "missing", Title: "x"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteBill removes bill", func(t *testing.T) {
		bill := &models.Bill{
			OwnerID: "owner-1",
			Diners:  []string{"Alice"},
			Dishes:  []models.Dish{{Name: "Tea", PriceCents: 300, Diners: []int{0}}},
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if err := store.DeleteBill(ctx, bill.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("dish IDs are scoped to their bill", func(t *testing.T) {
		dishes := func() []models.Dish {
			return []models.Dish{{ID: "dish-1", Name: "Soup", Quantity: 1, PriceCents: 800, Diners: []int{0}}}
		}
		first := &models.Bill{OwnerID: "owner-a", Diners: []string{"Alice"}, Dishes: dishes()}
		second := &models.Bill{OwnerID: "owner-b", Diners: []string{"Bob"}, Dishes: dishes()}

		if err := store.CreateBill(ctx, first); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if err := store.CreateBill(ctx, second); err != nil {
			t.Fatalf("CreateBill with a dish ID used by another bill failed: %v", err)
		}

		// Rewriting one bill leaves the other's dish and assignments alone.
		second.Dishes[0].Diners = []int{}
		if err := store.UpdateBill(ctx, second); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}
		got, err := store.GetBill(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if len(got.Dishes) != 1 || got.Dishes[0].ID != "dish-1" || !reflect.DeepEqual(got.Dishes[0].Diners, []int{0}) {
			t.Errorf("first bill dishes = %+v, want dish-1 assigned to diner 0", got.Dishes)
		}

		if err := store.DeleteBill(ctx, first.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		got, err = store.GetBill(ctx, second.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if len(got.Dishes) != 1 || got.Dishes[0].ID != "dish-1" {
			t.Errorf("second bill dishes = %+v, want dish-1 to survive", got.Dishes)
		}
	})
}

func TestSQLiteStore_ListBillsByOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Unix()
	for i, title := range []string{"First", "Second", "Third"} {
		bill := &models.Bill{
			OwnerID:   "owner-a",
			Title:     title,
			Diners:    []string{"Alice"},
			CreatedAt: base + int64(i)*60,
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}
	if err := store.CreateBill(ctx, &models.Bill{OwnerID: "owner-b", Title: "Other"}); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	bills, err := store.ListBillsByOwner(ctx, "owner-a")
	if err != nil {
		t.Fatalf("ListBillsByOwner failed: %v", err)
	}

	var titles []string
	for _, b := range bills {
		titles = append(titles, b.Title)
		if len(b.Diners) != 1 {
			t.Errorf("Expected listed bill %q to be fully loaded", b.Title)
		}
	}
	if !reflect.DeepEqual(titles, []string{"Third", "Second", "First"}) {
		t.Errorf("Titles = %v, want newest first", titles)
	}

	none, err := store.ListBillsByOwner(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListBillsByOwner failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no bills, got %d", len(none))
	}
}

func TestSQLiteStore_ListBillsByOwnerSameSecond(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 19, 30, 0, 0, time.UTC).Unix()
	want := make([]string, 10)
	for i := range 10 {
		title := fmt.Sprintf("Bill %d", i)
		want[len(want)-1-i] = title
		bill := &models.Bill{OwnerID: "owner-a", Title: title, CreatedAt: created}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}

	bills, err := store.ListBillsByOwner(ctx, "owner-a")
	if err != nil {
		t.Fatalf("ListBillsByOwner failed: %v", err)
	}
	var titles []string
	for _, b := range bills {
		titles = append(titles, b.Title)
	}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("Titles = %v, want %v", titles, want)
	}
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("Alice@Example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUserByEmail is case-insensitive", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.COM")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID || got.Email != "alice@example.com" {
			t.Errorf("Got %+v", got)
		}
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.DisplayName != "Alice" || got.PasswordHash != "hash" {
			t.Errorf("Got %+v", got)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Other", "hash2")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected duplicate email to fail")
		}
	})

	t.Run("unknown user returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

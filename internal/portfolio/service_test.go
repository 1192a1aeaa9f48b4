package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeRepo is an in-memory Repository that mimics the behaviors the service
// depends on: duplicate-key errors from the unique slug index and
// ErrNoDocuments on misses.
type fakeRepo struct {
	items []Item
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
}

func (f *fakeRepo) Insert(ctx context.Context, item Item) error {
	for _, existing := range f.items {
		if existing.Slug == item.Slug {
			return duplicateKeyErr()
		}
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]Item, error) {
	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (Item, error) {
	for _, item := range f.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return Item{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Update(ctx context.Context, slug string, set bson.M) (Item, error) {
	for i, item := range f.items {
		if item.Slug != slug {
			continue
		}
		for key, value := range set {
			switch key {
			case "title":
				item.Title = value.(string)
			case "hero_heading":
				item.HeroHeading = value.(string)
			case "hero_subheading":
				item.HeroSubheading = value.(string)
			case "introduction":
				item.Introduction = value.(string)
			case "why_choose":
				item.WhyChoose = value.(string)
			case "cta":
				item.CTA = value.(string)
			case "features":
				item.Features = value.([]Feature)
			case "images":
				item.Images = value.([]Image)
			case "updatedAt":
				item.UpdatedAt = value.(time.Time)
			}
		}
		f.items[i] = item
		return item, nil
	}
	return Item{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Delete(ctx context.Context, slug string) (bool, error) {
	for i, item := range f.items {
		if item.Slug == slug {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) PushImage(ctx context.Context, slug string, img Image, updatedAt time.Time) (Item, error) {
	for i, item := range f.items {
		if item.Slug == slug {
			item.Images = append(item.Images, img)
			item.UpdatedAt = updatedAt
			f.items[i] = item
			return item, nil
		}
	}
	return Item{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) PullImage(ctx context.Context, slug, imageID string, updatedAt time.Time) (Item, error) {
	for i, item := range f.items {
		if item.Slug != slug {
			continue
		}
		kept := make([]Image, 0, len(item.Images))
		for _, img := range item.Images {
			if img.ID != imageID {
				kept = append(kept, img)
			}
		}
		item.Images = kept
		item.UpdatedAt = updatedAt
		f.items[i] = item
		return item, nil
	}
	return Item{}, mongo.ErrNoDocuments
}

func validCreateRequest(slug string) CreateRequest {
	return CreateRequest{
		Slug:           slug,
		Title:          "Tensile Canopy Structures",
		HeroHeading:    "Durable Tensile Canopies",
		HeroSubheading: "Modern shade solutions",
		Introduction:   "A tensile canopy is more than just a roof.",
		WhyChoose:      "Decades of shade-crafting experience.",
		CTA:            "Request a free design consultation.",
	}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func TestCreateThenGetBySlug(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validCreateRequest("tensile-canopy-structures"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	if created.Images == nil || len(created.Images) != 0 {
		t.Fatalf("expected empty (non-nil) image list, got %#v", created.Images)
	}

	got, err := svc.GetBySlug(context.Background(), "tensile-canopy-structures")
	if err != nil {
		t.Fatalf("GetBySlug error: %v", err)
	}
	if got.Title != created.Title || got.HeroHeading != created.HeroHeading || got.CTA != created.CTA {
		t.Fatalf("stored item does not match created item: %#v", got)
	}
}

func TestCreateNormalizesSlug(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	created, err := svc.Create(context.Background(), validCreateRequest("Tensile Canopy Structures"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Slug != "tensile-canopy-structures" {
		t.Fatalf("expected normalized slug, got %q", created.Slug)
	}
}

func TestCreateInvalidSlug(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	if _, err := svc.Create(context.Background(), validCreateRequest("!!!")); !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	if _, err := svc.Create(context.Background(), validCreateRequest("x")); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	if _, err := svc.Create(context.Background(), validCreateRequest("x")); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("duplicate create must leave the store unchanged, have %d items", len(repo.items))
	}
}

func TestUpdateNeverChangesSlug(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	if _, err := svc.Create(context.Background(), validCreateRequest("x")); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	title := "New Title"
	updated, err := svc.Update(context.Background(), "x", UpdateRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Slug != "x" {
		t.Fatalf("slug changed on update: %q", updated.Slug)
	}
	if updated.Title != "New Title" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	// Untouched fields survive a partial merge.
	if updated.Introduction != "A tensile canopy is more than just a roof." {
		t.Fatalf("introduction should be untouched, got %q", updated.Introduction)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	title := "T"
	if _, err := svc.Update(context.Background(), "missing", UpdateRequest{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddImageDefaultsOrderAndGeneratesIDs(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	if _, err := svc.Create(context.Background(), validCreateRequest("x")); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	first, err := svc.AddImage(context.Background(), "x", AddImageRequest{URL: "/uploads/a.jpg"})
	if err != nil {
		t.Fatalf("AddImage error: %v", err)
	}
	second, err := svc.AddImage(context.Background(), "x", AddImageRequest{URL: "/uploads/b.jpg"})
	if err != nil {
		t.Fatalf("AddImage error: %v", err)
	}

	if len(second.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(second.Images))
	}
	if second.Images[0].Order != 0 || second.Images[1].Order != 1 {
		t.Fatalf("expected orders 0 and 1, got %d and %d", second.Images[0].Order, second.Images[1].Order)
	}
	if second.Images[0].ID == "" || second.Images[1].ID == "" {
		t.Fatalf("expected generated image ids")
	}
	if second.Images[0].ID == second.Images[1].ID {
		t.Fatalf("expected distinct image ids")
	}
	if first.UpdatedAt.After(second.UpdatedAt) {
		t.Fatalf("updatedAt must move forward on mutation")
	}
}

func TestAddImageExplicitOrder(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	if _, err := svc.Create(context.Background(), validCreateRequest("x")); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	order := 7
	item, err := svc.AddImage(context.Background(), "x", AddImageRequest{URL: "/uploads/a.jpg", Order: &order})
	if err != nil {
		t.Fatalf("AddImage error: %v", err)
	}
	if item.Images[0].Order != 7 {
		t.Fatalf("expected explicit order 7, got %d", item.Images[0].Order)
	}
}

func TestRemoveImageRoundTrip(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	if _, err := svc.Create(context.Background(), validCreateRequest("x")); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	item, err := svc.AddImage(context.Background(), "x", AddImageRequest{URL: "/uploads/a.jpg"})
	if err != nil {
		t.Fatalf("AddImage error: %v", err)
	}

	after, err := svc.RemoveImage(context.Background(), "x", item.Images[0].ID)
	if err != nil {
		t.Fatalf("RemoveImage error: %v", err)
	}
	if len(after.Images) != 0 {
		t.Fatalf("expected image to be removed, got %d images", len(after.Images))
	}
}

func TestRemoveImageUnknownIDIsNoop(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	if _, err := svc.Create(context.Background(), validCreateRequest("x")); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.AddImage(context.Background(), "x", AddImageRequest{URL: "/uploads/a.jpg"}); err != nil {
		t.Fatalf("AddImage error: %v", err)
	}

	after, err := svc.RemoveImage(context.Background(), "x", "does-not-exist")
	if err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
	if len(after.Images) != 1 {
		t.Fatalf("image list must be unchanged, got %d images", len(after.Images))
	}
}

func TestRemoveImageItemNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	if _, err := svc.RemoveImage(context.Background(), "missing", "id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateAssignsIDsToSeedImages(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	req := validCreateRequest("x")
	req.Images = []Image{
		{URL: "/uploads/a.jpg", Order: 0},
		{URL: "/uploads/b.jpg", Order: 1},
	}
	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Images[0].ID == "" || created.Images[1].ID == "" {
		t.Fatalf("expected ids assigned to supplied images")
	}
	if created.Images[0].ID == created.Images[1].ID {
		t.Fatalf("expected distinct ids within the item")
	}
}

package portfolio

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/trn-gabru/lafabrica/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound    = errors.New("portfolio item not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrInvalidSlug = errors.New("invalid slug")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Item, error) {
	slug := utils.Slugify(req.Slug)
	if slug == "" {
		return Item{}, ErrInvalidSlug
	}

	now := time.Now().In(s.location)
	item := Item{
		ID:             primitive.NewObjectID().Hex(),
		Slug:           slug,
		Title:          strings.TrimSpace(req.Title),
		HeroHeading:    strings.TrimSpace(req.HeroHeading),
		HeroSubheading: strings.TrimSpace(req.HeroSubheading),
		Introduction:   strings.TrimSpace(req.Introduction),
		WhyChoose:      strings.TrimSpace(req.WhyChoose),
		CTA:            strings.TrimSpace(req.CTA),
		Features:       normalizeFeatures(req.Features),
		Images:         assignImageIDs(req.Images),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		// The unique slug index is the single source of truth for
		// duplicates; there is no read-then-check.
		if mongo.IsDuplicateKeyError(err) {
			return Item{}, ErrSlugExists
		}
		return Item{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Item, error) {
	item, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

// Update merges the non-nil request fields into the stored document. The slug
// and document id are never part of the update.
func (s *Service) Update(ctx context.Context, slug string, req UpdateRequest) (Item, error) {
	set := bson.M{"updatedAt": time.Now().In(s.location)}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.HeroHeading != nil {
		set["hero_heading"] = strings.TrimSpace(*req.HeroHeading)
	}
	if req.HeroSubheading != nil {
		set["hero_subheading"] = strings.TrimSpace(*req.HeroSubheading)
	}
	if req.Introduction != nil {
		set["introduction"] = strings.TrimSpace(*req.Introduction)
	}
	if req.WhyChoose != nil {
		set["why_choose"] = strings.TrimSpace(*req.WhyChoose)
	}
	if req.CTA != nil {
		set["cta"] = strings.TrimSpace(*req.CTA)
	}
	if req.Features != nil {
		set["features"] = normalizeFeatures(*req.Features)
	}
	if req.Images != nil {
		set["images"] = assignImageIDs(*req.Images)
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(slug), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, slug string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(slug))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) AddImage(ctx context.Context, slug string, req AddImageRequest) (Item, error) {
	slug = strings.TrimSpace(slug)

	item, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return Item{}, err
	}

	order := len(item.Images)
	if req.Order != nil {
		order = *req.Order
	}

	img := Image{
		ID:    primitive.NewObjectID().Hex(),
		URL:   strings.TrimSpace(req.URL),
		Alt:   strings.TrimSpace(req.Alt),
		Title: strings.TrimSpace(req.Title),
		Order: order,
	}

	updated, err := s.repo.PushImage(ctx, slug, img, time.Now().In(s.location))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return updated, nil
}

// RemoveImage pulls the matching image. Pulling an id that does not exist
// leaves the document unchanged and is still a success; the caller gets the
// post-update item either way.
func (s *Service) RemoveImage(ctx context.Context, slug, imageID string) (Item, error) {
	updated, err := s.repo.PullImage(ctx, strings.TrimSpace(slug), strings.TrimSpace(imageID), time.Now().In(s.location))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return updated, nil
}

func normalizeFeatures(features []Feature) []Feature {
	out := make([]Feature, 0, len(features))
	for _, f := range features {
		out = append(out, Feature{
			Title:       strings.TrimSpace(f.Title),
			Description: strings.TrimSpace(f.Description),
		})
	}
	return out
}

// assignImageIDs guarantees every embedded image has a server-generated id.
// Ids supplied by the client (from a previous read) are kept.
func assignImageIDs(images []Image) []Image {
	out := make([]Image, 0, len(images))
	for _, img := range images {
		if img.ID == "" {
			img.ID = primitive.NewObjectID().Hex()
		}
		img.URL = strings.TrimSpace(img.URL)
		out = append(out, img)
	}
	return out
}

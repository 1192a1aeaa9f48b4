package portfolio

import (
	"encoding/json"
	"time"
)

// Item is a portfolio entry. BSON and JSON field names follow the site's
// existing documents (snake_case copy fields, camelCase timestamps), so the
// collection stays readable by the front end without a migration.
type Item struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Slug           string    `bson:"slug" json:"slug"`
	Title          string    `bson:"title" json:"title"`
	HeroHeading    string    `bson:"hero_heading" json:"hero_heading"`
	HeroSubheading string    `bson:"hero_subheading" json:"hero_subheading"`
	Introduction   string    `bson:"introduction" json:"introduction"`
	WhyChoose      string    `bson:"why_choose" json:"why_choose"`
	CTA            string    `bson:"cta" json:"cta"`
	Features       []Feature `bson:"features" json:"features"`
	Images         []Image   `bson:"images" json:"images"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Feature list order is display order.
type Feature struct {
	Title       string `bson:"title" json:"title" validate:"required"`
	Description string `bson:"description" json:"description" validate:"required"`
}

// Image is an embedded gallery entry. The id is generated server-side and is
// unique within its parent item. Order is an explicit display index; it is
// not resequenced after removals, so gaps can occur.
type Image struct {
	ID    string `bson:"_id" json:"id"`
	URL   string `bson:"url" json:"url" validate:"required"`
	Alt   string `bson:"alt" json:"alt"`
	Title string `bson:"title" json:"title"`
	Order int    `bson:"order" json:"order"`
}

type CreateRequest struct {
	Slug           string    `json:"slug" validate:"required"`
	Title          string    `json:"title" validate:"required"`
	HeroHeading    string    `json:"hero_heading" validate:"required"`
	HeroSubheading string    `json:"hero_subheading" validate:"required"`
	Introduction   string    `json:"introduction" validate:"required"`
	WhyChoose      string    `json:"why_choose" validate:"required"`
	CTA            string    `json:"cta" validate:"required"`
	Features       []Feature `json:"features" validate:"omitempty,dive"`
	Images         []Image   `json:"images" validate:"omitempty,dive"`
}

// UpdateRequest carries a partial merge. Nil fields are left untouched. The
// admin form PUTs a previously read document back whole, so the immutable and
// server-managed fields are decoded here and discarded before the merge; the
// slug in particular can never change through an update.
type UpdateRequest struct {
	Title          *string    `json:"title"`
	HeroHeading    *string    `json:"hero_heading"`
	HeroSubheading *string    `json:"hero_subheading"`
	Introduction   *string    `json:"introduction"`
	WhyChoose      *string    `json:"why_choose"`
	CTA            *string    `json:"cta"`
	Features       *[]Feature `json:"features" validate:"omitempty,dive"`
	Images         *[]Image   `json:"images" validate:"omitempty,dive"`

	// Round-tripped fields, never applied.
	ObjectID  json.RawMessage `json:"_id"`
	ID        json.RawMessage `json:"id"`
	Slug      json.RawMessage `json:"slug"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

type AddImageRequest struct {
	URL   string `json:"url" validate:"required"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
	Order *int   `json:"order"`
}

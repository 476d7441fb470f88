// Package content describes the videos offered by the storefront and the
// category that gates each of them.
package content

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/reelgate-inc/reelgate/internal/domain/tier"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidContent  = errors.New("invalid content item")
)

// contentIDPattern keeps IDs safe to embed in object-storage keys.
var contentIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

type Item struct {
	id       string
	title    string
	category tier.Category
	season   int
	episode  int
}

func NewItem(id, title string, category tier.Category, season, episode int) (Item, error) {
	if !contentIDPattern.MatchString(id) {
		return Item{}, fmt.Errorf("%w: id %q", ErrInvalidContent, id)
	}
	if !category.IsValid() {
		return Item{}, fmt.Errorf("%w: %s has category %q", ErrInvalidContent, id, category)
	}
	if title == "" {
		return Item{}, fmt.Errorf("%w: %s has no title", ErrInvalidContent, id)
	}
	return Item{id: id, title: title, category: category, season: season, episode: episode}, nil
}

func (i Item) ID() string {
	return i.id
}

func (i Item) Title() string {
	return i.title
}

func (i Item) Category() tier.Category {
	return i.category
}

func (i Item) Season() int {
	return i.season
}

func (i Item) Episode() int {
	return i.episode
}

// IsValidID reports whether s could name a content item.
func IsValidID(s string) bool {
	return contentIDPattern.MatchString(s)
}

// Catalog resolves content IDs. It is authoritative for an item's category;
// a category supplied by a client is only checked against it.
type Catalog interface {
	Get(ctx context.Context, id string) (Item, error)
	List(ctx context.Context) ([]Item, error)
}

// Package tier defines the purchasable access tiers and the content
// categories each one unlocks. The catalog is built once at package
// initialisation and never mutated; it is the only place prices and
// durations are defined.
package tier

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ID identifies a purchasable tier.
type ID string

const (
	Rental  ID = "rental"
	Regular ID = "regular"
	BoxSet  ID = "boxset"
)

func (id ID) String() string {
	return string(id)
}

// Category is a class of content gated by tier.
type Category string

const (
	CategoryEpisode Category = "episode"
	CategoryExtra   Category = "extra"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return c == CategoryEpisode || c == CategoryExtra
}

var (
	ErrUnknownTier     = errors.New("unknown tier")
	ErrUnknownCategory = errors.New("unknown content category")
)

// ParseID validates a raw tier identifier.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if _, ok := catalog[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return id, nil
}

// ParseCategory validates a raw content category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

type categorySet uint8

const (
	grantEpisode categorySet = 1 << iota
	grantExtra
)

func (s categorySet) has(c Category) bool {
	switch c {
	case CategoryEpisode:
		return s&grantEpisode != 0
	case CategoryExtra:
		return s&grantExtra != 0
	default:
		return false
	}
}

// Tier is an immutable catalog entry. Values are copied out of the catalog,
// so holders cannot change what another caller sees.
type Tier struct {
	id           ID
	name         string
	priceCents   int64
	currency     string
	grants       categorySet
	durationDays int // 0 means permanent
}

func (t Tier) ID() ID { return t.id }
func (t Tier) Name() string { return t.name }
func (t Tier) PriceCents() int64 { return t.priceCents }
func (t Tier) Currency() string { return t.currency }
func (t Tier) DurationDays() int { return t.durationDays }
func (t Tier) IsPermanent() bool { return t.durationDays == 0 }

// Grants reports whether the tier unlocks content of category c.
func (t Tier) Grants(c Category) bool {
	return t.grants.has(c)
}

// Categories lists granted categories in a stable order.
func (t Tier) Categories() []Category {
	out := make([]Category, 0, 2)
	for _, c := range []Category{CategoryEpisode, CategoryExtra} {
		if t.grants.has(c) {
			out = append(out, c)
		}
	}
	return out
}

// ExpiresAt returns createdAt plus the tier's duration, or nil for permanent tiers.
func (t Tier) ExpiresAt(createdAt time.Time) *time.Time {
	if t.IsPermanent() {
		return nil
	}
	exp := createdAt.UTC().AddDate(0, 0, t.durationDays)
	return &exp
}

// MatchesPayment reports whether amount and currency equal the catalog price.
func (t Tier) MatchesPayment(amountCents int64, currency string) bool {
	return amountCents == t.priceCents && strings.EqualFold(currency, t.currency)
}

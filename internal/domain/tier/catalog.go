package tier

import "fmt"

const defaultCurrency = "usd"

var catalog = map[ID]Tier{
	Rental: {
		id:           Rental,
		name:         "3-Day Rental",
		priceCents:   499,
		currency:     defaultCurrency,
		grants:       grantEpisode,
		durationDays: 3,
	},
	Regular: {
		id:         Regular,
		name:       "Own the Series",
		priceCents: 1499,
		currency:   defaultCurrency,
		grants:     grantEpisode,
	},
	BoxSet: {
		id:         BoxSet,
		name:       "Box Set",
		priceCents: 2499,
		currency:   defaultCurrency,
		grants:     grantEpisode | grantExtra,
	},
}

// order is the display order of the catalog.
var order = []ID{Rental, Regular, BoxSet}

// Get returns the catalog entry for id.
func Get(id ID) (Tier, error) {
	t, ok := catalog[id]
	if !ok {
		return Tier{}, fmt.Errorf("%w: %q", ErrUnknownTier, string(id))
	}
	return t, nil
}

// MustGet is Get for identifiers already known to be valid.
func MustGet(id ID) Tier {
	t, err := Get(id)
	if err != nil {
		panic(err)
	}
	return t
}

// All returns every tier in display order.
func All() []Tier {
	out := make([]Tier, 0, len(order))
	for _, id := range order {
		out = append(out, catalog[id])
	}
	return out
}

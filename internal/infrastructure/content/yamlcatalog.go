// Package content loads the content catalog from a YAML file.
package content

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/reelgate-inc/reelgate/internal/domain/content"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type catalogFile struct {
	Items []catalogEntry `yaml:"items"`
}

type catalogEntry struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Season   int    `yaml:"season"`
	Episode  int    `yaml:"episode"`
}

// YAMLCatalog is an immutable content.Catalog built once at startup.
type YAMLCatalog struct {
	items map[string]content.Item
	order []content.Item
}

// LoadYAMLCatalog reads and validates the catalog file at path.
func LoadYAMLCatalog(path string, logger logger.Interface) (*YAMLCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content catalog: %w", err)
	}

	catalog, err := ParseYAMLCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Infow("content catalog loaded",
		"path", path,
		"items", len(catalog.order),
	)
	return catalog, nil
}

// ParseYAMLCatalog builds a catalog from YAML bytes. Unknown fields and
// duplicate IDs are rejected.
func ParseYAMLCatalog(raw []byte) (*YAMLCatalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse content catalog: %w", err)
	}

	c := &YAMLCatalog{
		items: make(map[string]content.Item, len(file.Items)),
		order: make([]content.Item, 0, len(file.Items)),
	}
	for _, entry := range file.Items {
		item, err := content.NewItem(entry.ID, entry.Title, tier.Category(entry.Category), entry.Season, entry.Episode)
		if err != nil {
			return nil, err
		}
		if _, dup := c.items[item.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", content.ErrInvalidContent, item.ID())
		}
		c.items[item.ID()] = item
		c.order = append(c.order, item)
	}

	sort.SliceStable(c.order, func(i, j int) bool {
		a, b := c.order[i], c.order[j]
		if a.Category() != b.Category() {
			return a.Category() < b.Category()
		}
		if a.Season() != b.Season() {
			return a.Season() < b.Season()
		}
		if a.Episode() != b.Episode() {
			return a.Episode() < b.Episode()
		}
		return a.ID() < b.ID()
	})

	return c, nil
}

func (c *YAMLCatalog) Get(_ context.Context, id string) (content.Item, error) {
	item, ok := c.items[id]
	if !ok {
		return content.Item{}, fmt.Errorf("%w: %s", content.ErrContentNotFound, id)
	}
	return item, nil
}

func (c *YAMLCatalog) List(_ context.Context) ([]content.Item, error) {
	out := make([]content.Item, len(c.order))
	copy(out, c.order)
	return out, nil
}

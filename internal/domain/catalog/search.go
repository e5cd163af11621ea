package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/skinmarket/market/internal/gateways/database/models"
)

// skinSource implements fuzzy.Source over "<weapon> | <name>".
type skinSource []*models.Skin

func (s skinSource) String(i int) string {
	return strings.ToLower(s[i].Weapon + " | " + s[i].Name)
}

func (s skinSource) Len() int {
	return len(s)
}

// matchQuery keeps the skins that fuzzy-match query, preserving input order.
func matchQuery(skins []*models.Skin, query string) []*models.Skin {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return skins
	}

	matches := fuzzy.FindFrom(query, skinSource(skins))
	if len(matches) == 0 {
		return nil
	}

	hit := make([]bool, len(skins))
	for _, m := range matches {
		hit[m.Index] = true
	}

	result := make([]*models.Skin, 0, len(matches))
	for i, s := range skins {
		if hit[i] {
			result = append(result, s)
		}
	}
	return result
}

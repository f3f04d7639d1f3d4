package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// ValidateCatalog checks a loaded catalog for problems the loader tolerates:
// duplicate ids, a baseline that will be clamped and unusable upgrades.
// It returns nil when the catalog is clean.
func ValidateCatalog(cat domain.Catalog) error {
	var errors []string

	if b := cat.Marketing.BaselineMultiplier; b > domain.MaxAwareness {
		errors = append(errors, fmt.Sprintf("baseline multiplier %.2f exceeds the awareness cap %.1f and will be clamped", b, domain.MaxAwareness))
	}

	if len(cat.Personas) == 0 {
		errors = append(errors, "no personas configured: the wild customer stage will have nobody to select")
	}
	seen := make(map[string]bool)
	for _, p := range cat.Personas {
		if seen[p.ID] {
			errors = append(errors, fmt.Sprintf("duplicate persona '%s'", p.ID))
		}
		seen[p.ID] = true
		for _, r := range p.Rewards {
			if strings.TrimSpace(r) == "" {
				errors = append(errors, fmt.Sprintf("persona '%s' has an empty reward symbol", p.ID))
				break
			}
		}
	}

	seen = make(map[string]bool)
	for i, u := range cat.Upgrades {
		if u.ID == "" {
			errors = append(errors, fmt.Sprintf("upgrade #%d has no id", i+1))
			continue
		}
		if seen[u.ID] {
			errors = append(errors, fmt.Sprintf("duplicate upgrade '%s'", u.ID))
		}
		seen[u.ID] = true
		if u.Cost < 0 {
			errors = append(errors, fmt.Sprintf("upgrade '%s' has a negative cost", u.ID))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("catalog validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

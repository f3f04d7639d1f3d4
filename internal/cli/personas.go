package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/sweetwater/internal/presentation/tui"
	"github.com/aretw0/sweetwater/pkg/adapters/config"
	"github.com/aretw0/sweetwater/pkg/domain"
)

// ListPersonas prints the persona and upgrade catalog found in dir. Documents
// that fail to load are reported and replaced by defaults.
func ListPersonas(ctx context.Context, w io.Writer, dir string, plain bool) error {
	cat, err := config.FromDir(dir).Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		printSystemMessage(w, "Some documents fell back to defaults: %v", err)
	}

	md := CatalogMarkdown(cat)
	if plain {
		_, err := io.WriteString(w, md)
		return err
	}

	out, err := tui.NewRenderer(80)(md)
	if err != nil {
		return fmt.Errorf("render catalog: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// CatalogMarkdown formats a catalog as markdown tables.
func CatalogMarkdown(cat domain.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Catalog\n\nBaseline multiplier: **×%.2f**\n\n", cat.Baseline())

	b.WriteString("## Personas\n\n")
	if len(cat.Personas) == 0 {
		b.WriteString("_No personas configured._\n\n")
	} else {
		b.WriteString("| | ID | Name | Needs | Rewards |\n|---|---|---|---|---|\n")
		for _, p := range cat.Personas {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				p.Emoji, p.ID, p.Name, p.Needs, strings.Join(p.RewardSet(), " "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Upgrades\n\n")
	if len(cat.Upgrades) == 0 {
		b.WriteString("_No upgrades configured._\n")
		return b.String()
	}
	b.WriteString("| ID | Name | Cost |\n|---|---|---|\n")
	for _, u := range cat.Upgrades {
		fmt.Fprintf(&b, "| %s | %s | %.0f |\n", u.ID, u.Name, u.Cost)
	}
	return b.String()
}

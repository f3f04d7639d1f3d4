// Package config loads the catalog documents (marketing, personas, upgrades)
// from a directory of YAML or JSON files.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/aretw0/sweetwater/internal/logging"
	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Document names looked up in the config directory.
const (
	DocMarketing = "marketing"
	DocPersonas  = "personas"
	DocUpgrades  = "upgrades"
)

// extensions are tried in order; the first existing file wins.
var extensions = []string{".yaml", ".yml", ".json"}

// Loader reads catalog documents from a filesystem.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used to report documents that fell back to defaults.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a loader over fsys.
func New(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:   fsys,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromDir creates a loader over a directory on disk.
func FromDir(dir string, opts ...Option) *Loader {
	return New(os.DirFS(dir), opts...)
}

// Load reads every document. A document that is missing or malformed keeps its
// default value; the returned catalog is always usable and the error joins every
// document failure.
func (l *Loader) Load(ctx context.Context) (domain.Catalog, error) {
	cat := domain.DefaultCatalog()
	var errs []error

	fail := func(doc string, err error) {
		l.logger.Warn("Using default config document", "doc", doc, "err", err)
		errs = append(errs, fmt.Errorf("load %s: %w", doc, err))
	}

	if err := ctx.Err(); err != nil {
		return cat, err
	}
	if m, err := l.loadMarketing(); err != nil {
		fail(DocMarketing, err)
	} else {
		cat.Marketing = m
	}

	if err := ctx.Err(); err != nil {
		return cat, errors.Join(append(errs, err)...)
	}
	if p, err := l.loadPersonas(); err != nil {
		fail(DocPersonas, err)
	} else {
		cat.Personas = p
	}

	if err := ctx.Err(); err != nil {
		return cat, errors.Join(append(errs, err)...)
	}
	if u, err := l.loadUpgrades(); err != nil {
		fail(DocUpgrades, err)
	} else {
		cat.Upgrades = u
	}

	l.logger.Debug("Catalog loaded",
		"baseline", cat.Baseline(),
		"personas", len(cat.Personas),
		"upgrades", len(cat.Upgrades),
	)
	return cat, errors.Join(errs...)
}

func (l *Loader) loadMarketing() (domain.Marketing, error) {
	raw, err := l.read(DocMarketing)
	if err != nil {
		return domain.Marketing{}, err
	}
	var m domain.Marketing
	if err := decode(raw, &m); err != nil {
		return domain.Marketing{}, err
	}
	if m.BaselineMultiplier <= 0 {
		m.BaselineMultiplier = domain.DefaultBaselineMultiplier
	}
	return m, nil
}

type personaRecord struct {
	PersonaID   string   `mapstructure:"personaId"`
	ID          string   `mapstructure:"id"`
	Name        string   `mapstructure:"name"`
	Emoji       string   `mapstructure:"emoji"`
	Description string   `mapstructure:"description"`
	Needs       string   `mapstructure:"needs"`
	Rewards     []string `mapstructure:"rewards"`
}

func (l *Loader) loadPersonas() ([]domain.Persona, error) {
	raw, err := l.read(DocPersonas)
	if err != nil {
		return nil, err
	}
	var records []personaRecord
	if err := decode(unwrap(raw, DocPersonas), &records); err != nil {
		return nil, err
	}

	personas := make([]domain.Persona, 0, len(records))
	for i, r := range records {
		id := r.PersonaID
		if id == "" {
			id = r.ID
		}
		if id == "" {
			l.logger.Warn("Skipping persona without id", "index", i)
			continue
		}
		personas = append(personas, domain.Persona{
			ID:          id,
			Name:        r.Name,
			Emoji:       r.Emoji,
			Description: r.Description,
			Needs:       r.Needs,
			Rewards:     r.Rewards,
		}.WithDefaults())
	}
	return personas, nil
}

type upgradeRecord struct {
	UpgradeID   string  `mapstructure:"upgradeId"`
	ID          string  `mapstructure:"id"`
	Name        string  `mapstructure:"name"`
	Description string  `mapstructure:"description"`
	Cost        float64 `mapstructure:"cost"`
}

func (l *Loader) loadUpgrades() ([]domain.Upgrade, error) {
	raw, err := l.read(DocUpgrades)
	if err != nil {
		return nil, err
	}
	var records []upgradeRecord
	if err := decode(unwrap(raw, DocUpgrades), &records); err != nil {
		return nil, err
	}

	upgrades := make([]domain.Upgrade, 0, len(records))
	for _, r := range records {
		id := r.UpgradeID
		if id == "" {
			id = r.ID
		}
		name := r.Name
		if name == "" {
			name = id
		}
		upgrades = append(upgrades, domain.Upgrade{
			ID:          id,
			Name:        name,
			Description: r.Description,
			Cost:        r.Cost,
		})
	}
	return upgrades, nil
}

// read locates doc under any supported extension and parses it into generic values.
func (l *Loader) read(doc string) (any, error) {
	for _, ext := range extensions {
		name := doc + ext
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return parse(name, data)
	}
	return nil, fmt.Errorf("%s: %w", doc, domain.ErrConfigNotFound)
}

func parse(name string, data []byte) (any, error) {
	var raw any
	if strings.EqualFold(path.Ext(name), ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return raw, nil
}

// unwrap accepts both a bare list and a document keyed by its own name.
func unwrap(raw any, key string) any {
	if m, ok := raw.(map[string]any); ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return raw
}

func decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}

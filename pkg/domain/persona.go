package domain

// Persona is a customer archetype. It is owned by the configuration collaborator
// and only read by the core.
type Persona struct {
	ID          string   `json:"id" mapstructure:"id"`
	Name        string   `json:"name" mapstructure:"name"`
	Emoji       string   `json:"emoji" mapstructure:"emoji"`
	Description string   `json:"description" mapstructure:"description"`
	Needs       string   `json:"needs" mapstructure:"needs"`
	Rewards     []string `json:"rewards" mapstructure:"rewards"`
}

// NeutralRewards is the shared reward set used for neutral pickups and for
// preferred pickups when no persona reward set is available.
var NeutralRewards = []string{"🎵", "🎶", "🎼", "🎤"}

// knownPersonas holds the descriptive fields of the builtin archetypes.
var knownPersonas = map[string]Persona{
	"bedroom_producer": {
		Emoji:       "🎵",
		Description: "Creating beats in their home studio",
		Needs:       "Studio equipment & software",
		Rewards:     []string{"🎛️", "🎧", "💻", "🎹"},
	},
	"touring_pro": {
		Emoji:       "🎸",
		Description: "Professional musician on the road",
		Needs:       "Reliable gear for live shows",
		Rewards:     []string{"🎸", "🎤", "🔌", "📻"},
	},
	"choir_director": {
		Emoji:       "🎤",
		Description: "Leading vocal ensembles",
		Needs:       "Live sound & microphones",
		Rewards:     []string{"🎤", "📢", "🎵", "🎼"},
	},
	"studio_engineer": {
		Emoji:       "🎛️",
		Description: "Crafting perfect recordings",
		Needs:       "Mixing monitors & interfaces",
		Rewards:     []string{"🎛️", "🔊", "📡", "🎚️"},
	},
}

// WithDefaults returns a copy of p whose empty descriptive fields are filled from
// the builtin archetype with the same ID, or from generic fallbacks.
func (p Persona) WithDefaults() Persona {
	known, ok := knownPersonas[p.ID]
	if !ok {
		known = Persona{Emoji: "🎵", Description: "Music maker", Needs: "Music gear"}
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	if p.Emoji == "" {
		p.Emoji = known.Emoji
	}
	if p.Description == "" {
		p.Description = known.Description
	}
	if p.Needs == "" {
		p.Needs = known.Needs
	}
	if len(p.Rewards) == 0 && len(known.Rewards) > 0 {
		p.Rewards = append([]string(nil), known.Rewards...)
	}
	return p
}

// RewardSet returns the symbols a preferred pickup may show for this persona.
// A nil persona or one without rewards yields the neutral set.
func (p *Persona) RewardSet() []string {
	if p == nil || len(p.Rewards) == 0 {
		return NeutralRewards
	}
	return p.Rewards
}

// Upgrade is an entry of the upgrade catalog (only listed by the IT hub stage).
type Upgrade struct {
	ID          string  `json:"id" mapstructure:"id"`
	Name        string  `json:"name" mapstructure:"name"`
	Description string  `json:"description" mapstructure:"description"`
	Cost        float64 `json:"cost" mapstructure:"cost"`
}

// Marketing is the marketing stage configuration.
type Marketing struct {
	BaselineMultiplier float64 `json:"baselineMultiplier" mapstructure:"baselineMultiplier"`
}

// Catalog bundles the configuration documents the core reads at session init.
type Catalog struct {
	Marketing Marketing
	Personas  []Persona
	Upgrades  []Upgrade
}

// DefaultCatalog is the fallback used when configuration cannot be loaded.
func DefaultCatalog() Catalog {
	return Catalog{
		Marketing: Marketing{BaselineMultiplier: DefaultBaselineMultiplier},
	}
}

// Baseline returns the configured multiplier, or the default when unset.
func (c Catalog) Baseline() float64 {
	if c.Marketing.BaselineMultiplier <= 0 {
		return DefaultBaselineMultiplier
	}
	return c.Marketing.BaselineMultiplier
}

package gamedata

import (
	"fmt"
	"sort"
	"strings"
)

// Picker draws a uniform integer in [0, n). *rand.Rand and *rng.RNG both satisfy it.
type Picker interface {
	Intn(n int) int
}

// =============================================================================
// ClassRegistry
// =============================================================================

// ClassRegistry holds the playable classes in catalog order.
type ClassRegistry struct {
	classes []ClassDef
	byID    map[string]*ClassDef
}

// NewClassRegistry creates a registry from loaded class definitions.
func NewClassRegistry(classes []ClassDef) (*ClassRegistry, error) {
	registry := &ClassRegistry{
		classes: classes,
		byID:    make(map[string]*ClassDef, len(classes)),
	}
	for i := range classes {
		if err := classes[i].validate(); err != nil {
			return nil, err
		}
		if _, dup := registry.byID[classes[i].ID]; dup {
			return nil, fmt.Errorf("duplicate class id %q", classes[i].ID)
		}
		registry.byID[classes[i].ID] = &classes[i]
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("no classes defined")
	}
	return registry, nil
}

// GetByID returns the class with the given ID, or nil if not found.
// Lookup ignores case and surrounding whitespace.
func (r *ClassRegistry) GetByID(id string) *ClassDef {
	return r.byID[strings.ToLower(strings.TrimSpace(id))]
}

// IDs returns the selectable class IDs in catalog order.
func (r *ClassRegistry) IDs() []string {
	ids := make([]string, len(r.classes))
	for i := range r.classes {
		ids[i] = r.classes[i].ID
	}
	return ids
}

// All returns all class definitions.
func (r *ClassRegistry) All() []ClassDef {
	return r.classes
}

// Count returns the number of classes in the registry.
func (r *ClassRegistry) Count() int {
	return len(r.classes)
}

// =============================================================================
// EnemyRegistry
// =============================================================================

// EnemyRegistry separates regular enemies, drawn at random for enemy cells,
// from the single boss reserved for the last cell.
type EnemyRegistry struct {
	regular     []EnemyDef
	boss        *EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
// Exactly one definition must be flagged as the boss.
func NewEnemyRegistry(enemies []EnemyDef) (*EnemyRegistry, error) {
	registry := &EnemyRegistry{}
	for i := range enemies {
		def := enemies[i]
		if err := def.validate(); err != nil {
			return nil, err
		}
		if def.Boss {
			if registry.boss != nil {
				return nil, fmt.Errorf("more than one boss: %q and %q", registry.boss.ID, def.ID)
			}
			registry.boss = &def
			continue
		}
		if def.SpawnWeight <= 0 {
			return nil, fmt.Errorf("enemy %s: spawnWeight must be positive", def.ID)
		}
		registry.regular = append(registry.regular, def)
		registry.totalWeight += def.SpawnWeight
	}

	if registry.boss == nil {
		return nil, fmt.Errorf("no boss enemy defined")
	}
	if len(registry.regular) == 0 {
		return nil, fmt.Errorf("no regular enemies defined")
	}
	return registry, nil
}

// SpawnRandom selects a regular enemy using weighted probability. With the
// shipped catalog every weight is 1, so the draw is uniform. The boss is
// never returned.
func (r *EnemyRegistry) SpawnRandom(p Picker) *EnemyDef {
	roll := p.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.regular {
		cumulative += r.regular[i].SpawnWeight
		if roll < cumulative {
			return &r.regular[i]
		}
	}

	return &r.regular[0]
}

// Boss returns the boss definition.
func (r *EnemyRegistry) Boss() *EnemyDef {
	return r.boss
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	if r.boss.ID == id {
		return r.boss
	}
	for i := range r.regular {
		if r.regular[i].ID == id {
			return &r.regular[i]
		}
	}
	return nil
}

// Regular returns the non-boss enemy definitions.
func (r *EnemyRegistry) Regular() []EnemyDef {
	return r.regular
}

// Count returns the number of enemy types in the registry, boss included.
func (r *EnemyRegistry) Count() int {
	return len(r.regular) + 1
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles the class and enemy registries a session draws from.
type Catalog struct {
	Classes *ClassRegistry
	Enemies *EnemyRegistry
}

// LoadCatalog loads and validates the embedded classes.json and enemies.json.
func LoadCatalog() (*Catalog, error) {
	classes, err := LoadClasses()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	return NewCatalog(classes, enemies)
}

// NewCatalog builds a catalog from already-loaded definitions.
func NewCatalog(classes []ClassDef, enemies []EnemyDef) (*Catalog, error) {
	classRegistry, err := NewClassRegistry(classes)
	if err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}
	enemyRegistry, err := NewEnemyRegistry(enemies)
	if err != nil {
		return nil, fmt.Errorf("enemies: %w", err)
	}
	return &Catalog{Classes: classRegistry, Enemies: enemyRegistry}, nil
}

// MustLoadCatalog loads the catalog, panicking on error.
// The embedded data must be present for the game to function.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

func errMissingID(kind string) error {
	return fmt.Errorf("%s definition without id", kind)
}

// requirePositive reports the first non-positive stat, in name order so the
// message is stable.
func requirePositive(owner string, stats map[string]int) error {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if stats[name] <= 0 {
			return fmt.Errorf("%s: %s must be positive, got %d", owner, name, stats[name])
		}
	}
	return nil
}

package gamedata

import (
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadClasses(t *testing.T) {
	classes, err := LoadClasses()
	if err != nil {
		t.Fatalf("Failed to load classes: %v", err)
	}

	tests := []struct {
		id                               string
		hp, mana, attack, defense, magic int
	}{
		{"warrior", 120, 30, 18, 15, 5},
		{"mage", 80, 100, 8, 8, 20},
		{"rogue", 100, 50, 14, 12, 10},
		{"cleric", 100, 80, 12, 13, 16},
	}

	if len(classes) != len(tests) {
		t.Fatalf("Expected %d classes, got %d", len(tests), len(classes))
	}

	for i, tt := range tests {
		c := classes[i]
		if c.ID != tt.id {
			t.Errorf("classes[%d].ID = %q, want %q", i, c.ID, tt.id)
			continue
		}
		if c.HP != tt.hp || c.Mana != tt.mana || c.Attack != tt.attack || c.Defense != tt.defense || c.Magic != tt.magic {
			t.Errorf("%s stats = %d/%d/%d/%d/%d, want %d/%d/%d/%d/%d", c.ID,
				c.HP, c.Mana, c.Attack, c.Defense, c.Magic,
				tt.hp, tt.mana, tt.attack, tt.defense, tt.magic)
		}
	}
}

func TestCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if catalog.Classes.Count() != 4 {
		t.Errorf("Expected 4 classes, got %d", catalog.Classes.Count())
	}
	if catalog.Enemies.Count() != 6 {
		t.Errorf("Expected 6 enemy types, got %d", catalog.Enemies.Count())
	}
	if len(catalog.Enemies.Regular()) != 5 {
		t.Errorf("Expected 5 regular enemies, got %d", len(catalog.Enemies.Regular()))
	}

	boss := catalog.Enemies.Boss()
	if boss == nil || boss.ID != "dragon" {
		t.Fatalf("Boss() = %v, want dragon", boss)
	}
	if boss.HP != 100 || boss.Attack != 20 || boss.Defense != 15 || boss.Gold != 100 {
		t.Errorf("dragon stats = %d/%d/%d/%d, want 100/20/15/100", boss.HP, boss.Attack, boss.Defense, boss.Gold)
	}

	goblin := catalog.Enemies.GetByID("goblin")
	if goblin == nil {
		t.Fatal("Goblin not found by ID")
	}
	if goblin.Name != "Goblin" || goblin.HP != 30 || goblin.Defense != 5 || goblin.Gold != 10 {
		t.Errorf("goblin = %+v", *goblin)
	}

	if catalog.Classes.GetByID(" Warrior ") == nil {
		t.Error("class lookup should ignore case and whitespace")
	}
	if catalog.Classes.GetByID("bard") != nil {
		t.Error("unknown class should not resolve")
	}
}

func TestSpawnRandomNeverBoss(t *testing.T) {
	catalog := MustLoadCatalog()
	rng := rand.New(rand.NewSource(12345))

	seen := make(map[string]int)
	for i := 0; i < 5000; i++ {
		def := catalog.Enemies.SpawnRandom(rng)
		if def.Boss {
			t.Fatalf("SpawnRandom returned the boss %q", def.ID)
		}
		seen[def.ID]++
	}

	if len(seen) != 5 {
		t.Errorf("Expected all 5 regular enemies to spawn, saw %v", seen)
	}
	// Uniform: each near 1000 of 5000.
	for id, n := range seen {
		if n < 850 || n > 1150 {
			t.Errorf("enemy %s spawned %d times, want about 1000", id, n)
		}
	}
}

func TestSpawnRandomDeterministic(t *testing.T) {
	registry := MustLoadCatalog().Enemies

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 10; i++ {
		a := registry.SpawnRandom(rng1).ID
		b := registry.SpawnRandom(rng2).ID
		if a != b {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a, b)
		}
	}
}

func TestEnemyRegistryValidation(t *testing.T) {
	regular := EnemyDef{ID: "rat", Name: "Rat", HP: 5, Attack: 1, Defense: 1, Gold: 1, SpawnWeight: 1}
	boss := EnemyDef{ID: "lich", Name: "Lich", HP: 50, Attack: 9, Defense: 9, Gold: 50, Boss: true}

	tests := []struct {
		name    string
		enemies []EnemyDef
		wantErr string
	}{
		{"valid", []EnemyDef{regular, boss}, ""},
		{"no boss", []EnemyDef{regular}, "no boss"},
		{"two bosses", []EnemyDef{regular, boss, boss}, "more than one boss"},
		{"no regular", []EnemyDef{boss}, "no regular"},
		{"zero weight", []EnemyDef{{ID: "bat", HP: 1, Attack: 1, Defense: 1, Gold: 1}, boss}, "spawnWeight"},
		{"zero hp", []EnemyDef{{ID: "ghost", Attack: 1, Defense: 1, Gold: 1, SpawnWeight: 1}, boss}, "hp must be positive"},
	}

	for _, tt := range tests {
		_, err := NewEnemyRegistry(tt.enemies)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %v, want containing %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestLoadFromBrokenFile(t *testing.T) {
	fsys := fstest.MapFS{
		"classes.json": &fstest.MapFile{Data: []byte(`{"classes": [`)},
	}

	if _, err := LoadFrom[ClassesFile](fsys, "classes.json"); err == nil {
		t.Error("expected parse error for truncated JSON")
	}
	if _, err := LoadFrom[ClassesFile](fsys, "missing.json"); err == nil {
		t.Error("expected read error for missing file")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GGGGGG", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestDefMethods(t *testing.T) {
	def := EnemyDef{ID: "test", Glyph: "T", Color: "#FF0000"}
	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}
	if def.TCellColor() == 0 {
		t.Error("TCellColor returned zero color")
	}

	empty := ClassDef{}
	if empty.GlyphRune() != '?' {
		t.Errorf("empty glyph = %c, want ?", empty.GlyphRune())
	}
}

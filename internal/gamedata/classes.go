package gamedata

import "github.com/gdamore/tcell/v2"

// ClassDef defines a playable class loaded from JSON.
type ClassDef struct {
	ID      string `json:"id"`      // Selection identifier (e.g., "warrior")
	Name    string `json:"name"`    // Display name (e.g., "Warrior")
	Icon    string `json:"icon"`    // Emoji used in narration
	Glyph   string `json:"glyph"`   // Single character for the board (e.g., "W")
	Color   string `json:"color"`   // Hex color code
	HP      int    `json:"hp"`      // Maximum hit points
	Mana    int    `json:"mana"`    // Maximum mana
	Attack  int    `json:"attack"`  // Physical attack power
	Defense int    `json:"defense"` // Reduces incoming enemy damage
	Magic   int    `json:"magic"`   // Drives special attack damage
}

// GlyphRune returns the glyph as a rune for rendering.
func (c *ClassDef) GlyphRune() rune {
	return glyphRune(c.Glyph)
}

// TCellColor returns the class color as a tcell.Color.
func (c *ClassDef) TCellColor() tcell.Color {
	return colorOr(c.Color, tcell.ColorYellow)
}

func (c *ClassDef) validate() error {
	if c.ID == "" {
		return errMissingID("class")
	}
	return requirePositive("class "+c.ID, map[string]int{
		"hp":      c.HP,
		"mana":    c.Mana,
		"attack":  c.Attack,
		"defense": c.Defense,
		"magic":   c.Magic,
	})
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}

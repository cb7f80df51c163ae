package entity

import (
	"testing"

	"github.com/samdwyer/dicecrawl/internal/gamedata"
)

func TestNewPlayerClonesTemplate(t *testing.T) {
	catalog := gamedata.MustLoadCatalog()
	def := catalog.Classes.GetByID("mage")

	p := NewPlayer("run-1", def)
	p.HP -= 10
	p.MP -= 15

	if def.HP != 80 || def.Mana != 100 {
		t.Errorf("template mutated: hp=%d mana=%d", def.HP, def.Mana)
	}
	if p.MaxHP != 80 || p.MaxMP != 100 {
		t.Errorf("MaxHP/MaxMP = %d/%d, want 80/100", p.MaxHP, p.MaxMP)
	}
	if p.GetID() != "run-1" || p.GetType() != TypePlayer {
		t.Errorf("identity = %s/%s", p.GetID(), p.GetType())
	}
	if p.Glyph != 'M' {
		t.Errorf("Glyph = %c, want M", p.Glyph)
	}
}

func TestPlayerTakeDamageGoesNegative(t *testing.T) {
	p := &Player{HP: 5, MaxHP: 100}

	if got := p.TakeDamage(8); got != 8 {
		t.Errorf("TakeDamage(8) = %d, want 8", got)
	}
	if p.HP != -3 {
		t.Errorf("HP = %d, want -3", p.HP)
	}
	if p.IsAlive() {
		t.Error("player with negative HP should be dead")
	}
	if p.DisplayHP() != 0 {
		t.Errorf("DisplayHP() = %d, want 0", p.DisplayHP())
	}
	if p.TakeDamage(0) != 0 || p.HP != -3 {
		t.Error("zero damage should be a no-op")
	}
}

func TestPlayerHeal(t *testing.T) {
	tests := []struct {
		hp, max, amount int
		wantHP, wantGot int
	}{
		{50, 100, 30, 80, 30},
		{90, 100, 30, 100, 10},
		{100, 100, 30, 100, 0},
		{50, 100, 0, 50, 0},
	}

	for _, tt := range tests {
		p := &Player{HP: tt.hp, MaxHP: tt.max}
		got := p.Heal(tt.amount)
		if got != tt.wantGot || p.HP != tt.wantHP {
			t.Errorf("Heal(%d) from %d/%d = %d (hp %d), want %d (hp %d)",
				tt.amount, tt.hp, tt.max, got, p.HP, tt.wantGot, tt.wantHP)
		}
	}
}

func TestPlayerSpendMP(t *testing.T) {
	p := &Player{MP: 10, MaxMP: 100}

	if p.SpendMP(15) {
		t.Error("SpendMP(15) with 10 MP should fail")
	}
	if p.MP != 10 {
		t.Errorf("MP after failed spend = %d, want 10", p.MP)
	}
	if !p.SpendMP(10) || p.MP != 0 {
		t.Errorf("SpendMP(10) should succeed leaving 0, MP = %d", p.MP)
	}
}

func TestConsumeDefend(t *testing.T) {
	p := &Player{Defending: true}

	if !p.ConsumeDefend() {
		t.Error("first ConsumeDefend() should report true")
	}
	if p.ConsumeDefend() {
		t.Error("second ConsumeDefend() should report false")
	}
}

func TestNewEnemy(t *testing.T) {
	catalog := gamedata.MustLoadCatalog()

	goblin := NewEnemy("e-1", catalog.Enemies.GetByID("goblin"))
	if goblin.HP != 30 || goblin.MaxHP != 30 {
		t.Errorf("goblin HP/MaxHP = %d/%d, want 30/30", goblin.HP, goblin.MaxHP)
	}
	if goblin.GetType() != TypeEnemy || goblin.IsBoss() {
		t.Error("goblin should be a regular enemy")
	}
	if goblin.GoldReward() != 10 || goblin.Defense() != 5 || goblin.Attack() != 8 {
		t.Errorf("goblin stats = atk %d def %d gold %d", goblin.Attack(), goblin.Defense(), goblin.GoldReward())
	}

	goblin.TakeDamage(40)
	if goblin.IsAlive() || goblin.DisplayHP() != 0 || goblin.HP != -10 {
		t.Errorf("goblin after 40 damage: HP %d alive %v", goblin.HP, goblin.IsAlive())
	}
	if catalog.Enemies.GetByID("goblin").HP != 30 {
		t.Error("template mutated by instance damage")
	}

	dragon := NewEnemy("e-2", catalog.Enemies.Boss())
	if dragon.GetType() != TypeBoss || !dragon.IsBoss() {
		t.Error("dragon should report boss type")
	}
}

package game

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Channel separates board narration from combat narration.
type Channel string

const (
	ChannelBoard  Channel = "board"
	ChannelCombat Channel = "combat"
)

// EventKind identifies a log event.
type EventKind string

const (
	EventRunStarted       EventKind = "run_started"
	EventDiceRolled       EventKind = "dice_rolled"
	EventMoved            EventKind = "moved"
	EventTreasureFound    EventKind = "treasure_found"
	EventTrapTriggered    EventKind = "trap_triggered"
	EventEncounterStarted EventKind = "encounter_started"
	EventPlayerAttack     EventKind = "player_attack"
	EventSpecialAttack    EventKind = "special_attack"
	EventDefend           EventKind = "defend"
	EventFleeSucceeded    EventKind = "flee_succeeded"
	EventFleeFailed       EventKind = "flee_failed"
	EventDamageHalved     EventKind = "damage_halved"
	EventEnemyAttack      EventKind = "enemy_attack"
	EventEnemyDefeated    EventKind = "enemy_defeated"
	EventGoldAwarded      EventKind = "gold_awarded"
	EventInsufficientMana EventKind = "insufficient_mana"
	EventHealed           EventKind = "healed"
	EventPlayerDefeated   EventKind = "player_defeated"
	EventVictory          EventKind = "victory"
	EventRunReset         EventKind = "run_reset"
)

// Event is one discrete log entry. Events carry no timestamps; the
// presentation layer orders them by arrival.
type Event struct {
	Kind    EventKind
	Channel Channel
	Message string
	Amount  int    // Gold, damage or healing, depending on Kind
	Actor   string // Entity id of the player or enemy involved, if any
}

func (s *Session) emit(kind EventKind, ch Channel, actor core.Entity, amount int, format string, args ...any) {
	ev := Event{
		Kind:    kind,
		Channel: ch,
		Message: fmt.Sprintf(format, args...),
		Amount:  amount,
	}
	if actor != nil {
		ev.Actor = actor.GetID()
	}
	s.events = append(s.events, ev)
}

// DrainEvents returns the events emitted since the last drain.
func (s *Session) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}

package model

import (
	"fmt"
	"sync"

	"github.com/skillmine/core/internal/data"
)

// Pet leveling and bonding tunables.
const (
	petBaseHealth     = 30.0
	petBaseExpToLevel = 50
	petAbilityUseXP   = 5

	petMaxBond        = 100
	petMaxHappiness   = 100.0
	petStartHappiness = 50.0

	// Happiness starts draining after this long without attention.
	petNeglectDelay       = 300.0
	petHappinessDecayRate = 0.6
)

// Pet is a companion bonded to a character. It levels independently,
// and its bond level both strengthens abilities and gates the later
// ones.
type Pet struct {
	mu sync.RWMutex

	tpl      *data.PetTemplate
	nickname string

	level      int
	experience int
	expToLevel int

	attack  int
	defense int
	speed   int

	health    float64
	maxHealth float64

	bond          int
	happiness     float64
	sinceInteract float64

	cooldowns map[string]float64
}

// NewPet adopts a pet of the given species. An empty nickname falls
// back to the species name.
func NewPet(tpl *data.PetTemplate, nickname string) *Pet {
	if nickname == "" {
		nickname = tpl.Name
	}
	p := &Pet{
		tpl:        tpl,
		nickname:   nickname,
		level:      1,
		expToLevel: petBaseExpToLevel,
		attack:     tpl.Attack,
		defense:    tpl.Defense,
		speed:      tpl.Speed,
		maxHealth:  petBaseHealth + float64(tpl.Defense*2),
		happiness:  petStartHappiness,
		cooldowns:  make(map[string]float64),
	}
	p.health = p.maxHealth
	return p
}

// Template returns the static species definition.
func (p *Pet) Template() *data.PetTemplate { return p.tpl }

// Nickname returns the pet's given name.
func (p *Pet) Nickname() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.nickname
}

// Rename gives the pet a new name.
func (p *Pet) Rename(name string) {
	if name == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nickname = name
}

// Level returns the pet's level.
func (p *Pet) Level() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// Experience returns progress into the current level.
func (p *Pet) Experience() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.experience
}

// ExpToLevel returns the experience needed for the next level.
func (p *Pet) ExpToLevel() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.expToLevel
}

// Attack returns the pet's attack stat.
func (p *Pet) Attack() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.attack
}

// Defense returns the pet's defense stat.
func (p *Pet) Defense() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.defense
}

// Speed returns the pet's speed stat.
func (p *Pet) Speed() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.speed
}

// Health returns current health.
func (p *Pet) Health() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health
}

// MaxHealth returns the health pool size.
func (p *Pet) MaxHealth() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxHealth
}

// Bond returns the bond level (0-100).
func (p *Pet) Bond() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bond
}

// Happiness returns the happiness level (0-100).
func (p *Pet) Happiness() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.happiness
}

// BondMultiplier scales ability effectiveness by bond: 1.0 at no bond
// up to 1.5 at maximum.
func (p *Pet) BondMultiplier() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bondMultiplierLocked()
}

func (p *Pet) bondMultiplierLocked() float64 {
	return 1.0 + float64(p.bond)/200.0
}

// GainExp adds experience and applies level-ups. Returns the number of
// levels gained.
func (p *Pet) GainExp(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.experience += amount
	gained := 0
	for p.experience >= p.expToLevel {
		p.experience -= p.expToLevel
		p.levelUpLocked()
		gained++
	}
	return gained
}

func (p *Pet) levelUpLocked() {
	p.level++
	p.expToLevel = p.expToLevel * 3 / 2
	p.attack += 2
	p.defense++
	p.speed++
	p.maxHealth += 5
	p.health = p.maxHealth
}

// Interact pets the companion: a small happiness and bond gain.
func (p *Pet) Interact() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.happiness = min(p.happiness+5, petMaxHappiness)
	p.bond = min(p.bond+1, petMaxBond)
	p.sinceInteract = 0
}

// Feed gives the pet a treat: a larger happiness and bond gain.
func (p *Pet) Feed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.happiness = min(p.happiness+15, petMaxHappiness)
	p.bond = min(p.bond+3, petMaxBond)
	p.sinceInteract = 0
}

// Play runs a play session, sitting between Interact and Feed in effect.
func (p *Pet) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.happiness = min(p.happiness+10, petMaxHappiness)
	p.bond = min(p.bond+2, petMaxBond)
	p.sinceInteract = 0
}

// Knows reports whether the ability belongs to this pet's species kit.
func (p *Pet) Knows(abilityID string) bool {
	for _, id := range p.tpl.Abilities {
		if id == abilityID {
			return true
		}
	}
	return false
}

// AbilityUnlocked reports whether the bond level has opened the ability.
func (p *Pet) AbilityUnlocked(tpl *data.PetAbilityTemplate) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bond >= tpl.UnlockBond
}

// AbilityReady reports whether the ability is off cooldown.
func (p *Pet) AbilityReady(abilityID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cooldowns[abilityID] <= 0
}

// CooldownRemaining returns seconds until the ability is usable again.
func (p *Pet) CooldownRemaining(abilityID string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return max(p.cooldowns[abilityID], 0)
}

// UseAbility validates and commits an ability use: the pet must know
// it, the bond must have unlocked it and the cooldown must be over.
// On success the cooldown starts and the pet earns a little experience.
// The caller applies the ability's actual effect.
func (p *Pet) UseAbility(tpl *data.PetAbilityTemplate) error {
	if !p.Knows(tpl.ID) {
		return fmt.Errorf("%s does not know %s", p.Nickname(), tpl.ID)
	}

	p.mu.Lock()
	if p.bond < tpl.UnlockBond {
		p.mu.Unlock()
		return fmt.Errorf("%s needs bond %d for %s", p.nickname, tpl.UnlockBond, tpl.ID)
	}
	if p.cooldowns[tpl.ID] > 0 {
		remaining := p.cooldowns[tpl.ID]
		p.mu.Unlock()
		return fmt.Errorf("%s is on cooldown (%.1fs left)", tpl.ID, remaining)
	}
	p.cooldowns[tpl.ID] = tpl.Cooldown
	p.mu.Unlock()

	p.GainExp(petAbilityUseXP)
	return nil
}

// Update advances cooldowns and applies happiness decay once the pet
// has been neglected long enough.
func (p *Pet) Update(dt float64) {
	if dt <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, left := range p.cooldowns {
		if left <= dt {
			delete(p.cooldowns, id)
			continue
		}
		p.cooldowns[id] = left - dt
	}

	p.sinceInteract += dt
	if p.sinceInteract > petNeglectDelay {
		p.happiness = max(p.happiness-petHappinessDecayRate*dt, 0)
	}
}

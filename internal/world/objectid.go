package world

import "sync/atomic"

// Entity id ranges. Keeping kinds in disjoint ranges means an id alone
// tells you what it refers to, and nothing ever collides.
const (
	CharacterIDBase uint64 = 0x1000_0000
	EnemyIDBase     uint64 = 0x2000_0000
	PetIDBase       uint64 = 0x3000_0000
)

// IDAllocator hands out unique entity ids. Constructed per world so
// parallel worlds never share a sequence.
type IDAllocator struct {
	nextCharacter atomic.Uint64
	nextEnemy     atomic.Uint64
	nextPet       atomic.Uint64
}

// NewIDAllocator creates an allocator with each range at its base.
func NewIDAllocator() *IDAllocator {
	a := &IDAllocator{}
	a.nextCharacter.Store(CharacterIDBase)
	a.nextEnemy.Store(EnemyIDBase)
	a.nextPet.Store(PetIDBase)
	return a
}

// NextCharacterID returns the next unique character id.
func (a *IDAllocator) NextCharacterID() uint64 {
	return a.nextCharacter.Add(1)
}

// NextEnemyID returns the next unique enemy id.
func (a *IDAllocator) NextEnemyID() uint64 {
	return a.nextEnemy.Add(1)
}

// NextPetID returns the next unique pet id.
func (a *IDAllocator) NextPetID() uint64 {
	return a.nextPet.Add(1)
}

package model

import "fmt"

// Perk percentages granted by each taken perk.
const (
	alchemistPerkStep   = 20 // per rank, up to 5 ranks
	physicianPerkBonus  = 25
	benefactorPerkBonus = 25
	poisonerPerkBonus   = 25
	seekerBonus         = 10

	maxAlchemistRank = 5

	// DefaultSkill is the untrained alchemy skill level.
	DefaultSkill = 15
)

// ActorProfile holds every attribute that scales potion valuation.
// All multiplier terms are percentages; a zero term composes to a
// neutral 1.0 factor. Value type, immutable by convention.
type ActorProfile struct {
	Skill           int32 // alchemy skill level
	FortifyAlchemy  int32 // enchantment bonus, percent
	AlchemistPerk   int32 // percent, 20 per rank
	PhysicianPerk   int32 // percent, applies to restorative effects only
	BenefactorPerk  int32 // percent, applies to fortify effects only
	PoisonerPerk    int32 // percent, applies to harmful effects only
	SeekerOfShadows int32 // percent
	HasPurity       bool
}

// NewActorProfile validates and builds a profile from skill level,
// enchantment bonus, alchemist perk rank and boolean perk flags.
func NewActorProfile(skill, fortify, alchemistRank int32, physician, benefactor, poisoner, seeker, purity bool) (ActorProfile, error) {
	if skill < 0 {
		return ActorProfile{}, fmt.Errorf("skill must be non-negative, got %d", skill)
	}
	if fortify < 0 {
		return ActorProfile{}, fmt.Errorf("fortify alchemy must be non-negative, got %d", fortify)
	}
	if alchemistRank < 0 || alchemistRank > maxAlchemistRank {
		return ActorProfile{}, fmt.Errorf("alchemist rank must be in 0..%d, got %d", maxAlchemistRank, alchemistRank)
	}

	p := ActorProfile{
		Skill:          skill,
		FortifyAlchemy: fortify,
		AlchemistPerk:  alchemistRank * alchemistPerkStep,
		HasPurity:      purity,
	}
	if physician {
		p.PhysicianPerk = physicianPerkBonus
	}
	if benefactor {
		p.BenefactorPerk = benefactorPerkBonus
	}
	if poisoner {
		p.PoisonerPerk = poisonerPerkBonus
	}
	if seeker {
		p.SeekerOfShadows = seekerBonus
	}
	return p, nil
}

// DefaultActor is the reference profile used for base-value ranking:
// untrained skill, no enchantments, no perks.
func DefaultActor() ActorProfile {
	return ActorProfile{Skill: DefaultSkill}
}

// WithoutBenefactor returns a copy with the benefactor perk disabled.
// Used when a harmful compound carries stray beneficial effects.
func (p ActorProfile) WithoutBenefactor() ActorProfile {
	p.BenefactorPerk = 0
	return p
}

// WithoutPoisoner returns a copy with the poisoner perk disabled.
// Used when a beneficial compound carries stray harmful effects.
func (p ActorProfile) WithoutPoisoner() ActorProfile {
	p.PoisonerPerk = 0
	return p
}

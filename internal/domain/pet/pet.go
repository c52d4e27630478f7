package pet

import (
	"time"

	"github.com/MRamiBalles/sdop/internal/domain/rng"
	"github.com/MRamiBalles/sdop/internal/domain/rules"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// MaxStages bounds the life-stage history.
const MaxStages = 4

const (
	hungerPerSecond      float32 = 0.001
	sleepingHungerFactor float32 = 0.3
	weightLossPerSecond  float32 = 0.01
)

// DeathCause explains how a pet died.
type DeathCause uint8

const (
	DeathStarvation DeathCause = iota + 1
	DeathOldAge
	DeathToxicShock
	DeathLightningStrike
	// DeathLeaving marks a parent that left when its egg hatched.
	DeathLeaving
)

func (c DeathCause) String() string {
	switch c {
	case DeathStarvation:
		return "STARVATION"
	case DeathOldAge:
		return "OLD_AGE"
	case DeathToxicShock:
		return "TOXIC_SHOCK"
	case DeathLightningStrike:
		return "LIGHTNING_STRIKE"
	case DeathLeaving:
		return "LEAVING"
	}
	return "UNKNOWN"
}

// ValidCause reports whether c is one of the defined causes.
func ValidCause(c DeathCause) bool {
	return c >= DeathStarvation && c <= DeathLeaving
}

// Parents holds the lineage of a bred pet.
type Parents struct {
	A UPID `json:"a"`
	B UPID `json:"b"`
}

// Death is set once a pet has died and stays set until it is recorded.
type Death struct {
	Cause DeathCause          `json:"cause"`
	At    timestamp.Timestamp `json:"at"`
}

// StageEntry records when the pet entered a life stage.
type StageEntry struct {
	Stage LifeStage           `json:"stage"`
	At    timestamp.Timestamp `json:"at"`
}

// Instance is the live pet.
type Instance struct {
	UPID    UPID                `json:"upid"`
	DefID   DefID               `json:"def_id"`
	Name    string              `json:"name"`
	Parents *Parents            `json:"parents,omitempty"`
	Born    timestamp.Timestamp `json:"born"`

	Age             time.Duration `json:"age"`
	Stomach         float32       `json:"stomach"`
	ExtraWeight     float32       `json:"extra_weight"`
	SincePoop       time.Duration `json:"since_poop"`
	SinceGame       time.Duration `json:"since_game"`
	Starving        time.Duration `json:"starving"`
	SinceDeathCheck time.Duration `json:"since_death_check"`

	Stages     [MaxStages]StageEntry `json:"stages"`
	StageCount uint8                 `json:"stage_count"`

	Death         *Death `json:"death,omitempty"`
	EvolveTo      DefID  `json:"evolve_to"`
	EvolvePending bool   `json:"evolve_pending"`
	SeenAlien     bool   `json:"seen_alien"`
}

// New creates a freshly hatched pet with its first stage entry.
func New(upid UPID, def DefID, name string, born timestamp.Timestamp, parents *Parents) Instance {
	d := Get(def)
	p := Instance{
		UPID:    upid,
		DefID:   d.ID,
		Name:    name,
		Parents: parents,
		Born:    born,
		Stomach: d.StomachSize / 2,
	}
	p.AppendStage(d.Stage, born)
	return p
}

// NewRandom creates a random baby.
func NewRandom(src *rng.Rng, born timestamp.Timestamp) Instance {
	return New(GenUPID(src), rng.Choice(src, Babies), RandomName(src), born, nil)
}

func (p *Instance) Definition() *Definition { return Get(p.DefID) }

func (p *Instance) Stage() LifeStage { return p.Definition().Stage }

func (p *Instance) Dead() bool { return p.Death != nil }

// Weight is the species base weight plus what the pet has put on.
func (p *Instance) Weight() float32 {
	return p.Definition().BaseWeight + p.ExtraWeight
}

// ShouldBreed reports whether the pet can attract a suiter.
func (p *Instance) ShouldBreed() bool {
	return !p.Dead() && p.Stage() == StageAdult && p.Stomach > 0
}

// AppendStage adds a history entry. Entries past capacity or out of order are refused.
func (p *Instance) AppendStage(stage LifeStage, at timestamp.Timestamp) bool {
	if int(p.StageCount) >= MaxStages {
		return false
	}
	if p.StageCount > 0 && at.Before(p.Stages[p.StageCount-1].At) {
		return false
	}
	p.Stages[p.StageCount] = StageEntry{Stage: stage, At: at}
	p.StageCount++
	return true
}

// StageHistory returns the filled part of the history.
func (p *Instance) StageHistory() []StageEntry {
	return p.Stages[:p.StageCount]
}

func (p *Instance) TickAge(delta time.Duration) {
	p.Age += delta
}

// TickHunger empties the stomach and burns extra weight. Sleep slows digestion.
func (p *Instance) TickHunger(delta time.Duration, sleeping bool) {
	secs := float32(delta.Seconds())

	loss := hungerPerSecond * secs
	if sleeping {
		loss *= sleepingHungerFactor
	}
	p.Stomach -= loss
	if p.Stomach <= 0 {
		p.Stomach = 0
		p.Starving += delta
	} else {
		p.Starving = 0
	}

	p.ExtraWeight -= weightLossPerSecond * secs
	if p.ExtraWeight < 0 {
		p.ExtraWeight = 0
	}
}

func (p *Instance) TickPoop(delta time.Duration) {
	p.SincePoop += delta
}

// TickSinceGame only counts awake time.
func (p *Instance) TickSinceGame(delta time.Duration, sleeping bool) {
	if sleeping {
		return
	}
	p.SinceGame += delta
}

// ShouldPoop draws once against the poop odds for the time since the last poop.
func (p *Instance) ShouldPoop(src *rng.Rng, sleeping bool) bool {
	interval := p.Definition().PoopInterval
	if interval <= 0 {
		return false
	}
	odds := rules.Odds(rules.PoopOdds, float32(p.SincePoop.Seconds()/interval.Seconds()))
	if sleeping {
		odds *= rules.SleepingPoopFactor
	}
	return src.F32() < odds
}

// TickDeath rolls the death tables every rules.DeathCheckInterval of sim time.
func (p *Instance) TickDeath(delta time.Duration, src *rng.Rng, now timestamp.Timestamp, poopCount int) {
	if p.Dead() {
		return
	}
	p.SinceDeathCheck += delta
	if p.SinceDeathCheck < rules.DeathCheckInterval {
		return
	}
	p.SinceDeathCheck -= rules.DeathCheckInterval

	if cause, ok := p.rollDeath(src, poopCount); ok {
		p.Death = &Death{Cause: cause, At: now}
	}
}

func (p *Instance) rollDeath(src *rng.Rng, poopCount int) (DeathCause, bool) {
	if src.F32() < rules.LightningStrikeOdds {
		return DeathLightningStrike, true
	}
	if rules.Passed(src, rules.StarvationOdds, p.Starving) {
		return DeathStarvation, true
	}
	if lifespan := p.Definition().Lifespan; lifespan > 0 {
		if rules.Passed(src, rules.OldAgeOdds, float32(p.Age.Seconds()/lifespan.Seconds())) {
			return DeathOldAge, true
		}
	}
	if rules.Passed(src, rules.ToxicShockOdds, poopCount) {
		return DeathToxicShock, true
	}
	return 0, false
}

// TickEvolve flags a pending evolution. The evolve scene commits it.
func (p *Instance) TickEvolve() {
	if p.Dead() || p.EvolvePending {
		return
	}
	if next, ok := p.Definition().NextStage(p.Age, p.ExtraWeight); ok {
		p.EvolveTo = next
		p.EvolvePending = true
	}
}

// CommitEvolve switches species and appends the new stage.
func (p *Instance) CommitEvolve(at timestamp.Timestamp) bool {
	if !p.EvolvePending {
		return false
	}
	p.DefID = p.EvolveTo
	p.EvolvePending = false
	p.EvolveTo = 0
	p.AppendStage(p.Stage(), at)
	return true
}

// Feed fills the stomach. Whatever does not fit turns into weight.
func (p *Instance) Feed(fill, weight float32) {
	room := p.Definition().StomachSize - p.Stomach
	if fill > room {
		p.ExtraWeight += weight * (fill - room) / fill
		fill = room
	}
	if fill > 0 {
		p.Stomach += fill
	}
	p.Starving = 0
}

// Played resets the boredom timer.
func (p *Instance) Played() {
	p.SinceGame = 0
}

// Retire files a living pet that leaves the device.
func (p *Instance) Retire(at timestamp.Timestamp) Record {
	r := p.Record()
	r.Died = at
	r.Cause = DeathLeaving
	return r
}

// Record promotes a dead pet into a history entry.
func (p *Instance) Record() Record {
	r := Record{
		UPID:        p.UPID,
		DefID:       p.DefID,
		Name:        p.Name,
		Born:        p.Born,
		ExtraWeight: p.ExtraWeight,
	}
	if p.Parents != nil {
		r.Parents = *p.Parents
	}
	if p.Death != nil {
		r.Died = p.Death.At
		r.Cause = p.Death.Cause
	}
	return r
}

package save

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/MRamiBalles/sdop/internal/domain/economy"
	"github.com/MRamiBalles/sdop/internal/domain/item"
	"github.com/MRamiBalles/sdop/internal/domain/pet"
	"github.com/MRamiBalles/sdop/internal/domain/poop"
	"github.com/MRamiBalles/sdop/internal/domain/suiter"
	"github.com/MRamiBalles/sdop/internal/domain/timestamp"
)

// Field layout. Every multi-byte value is little endian.
const (
	boolSize     = 1
	u8Size       = 1
	u16Size      = 2
	u32Size      = 4
	u64Size      = 8
	f32Size      = 4
	durationSize = 8
	tsSize       = 12 // unix seconds + nanoseconds
	nameSize     = 1 + pet.MaxNameLen
	parentsSize  = 2 * u64Size
	upidSize     = u64Size
	defIDSize    = u16Size

	stageEntrySize = u8Size + tsSize
	deathSize      = boolSize + u8Size + tsSize

	petSize = upidSize + defIDSize + nameSize +
		boolSize + parentsSize +
		tsSize +
		5*durationSize +
		2*f32Size +
		pet.MaxStages*stageEntrySize + u8Size +
		deathSize +
		defIDSize + boolSize + boolSize

	moneySize     = u32Size
	unlockedSize  = u32Size
	inventorySize = int(item.ItemCount) * u32Size
	shopSize      = u8Size
	poopSlotSize  = boolSize + tsSize
	poopsSize     = poop.MaxPoops * poopSlotSize

	recordSize  = upidSize + defIDSize + nameSize + parentsSize + tsSize + tsSize + u8Size + f32Size
	historySize = u8Size + pet.HistorySize*recordSize

	suiterSize  = defIDSize + upidSize + nameSize + durationSize
	suitersSize = boolSize + suiterSize + durationSize

	eggSize   = boolSize + upidSize + defIDSize + parentsSize + tsSize + durationSize
	alarmSize = boolSize + u8Size + u8Size

	checksumSize = u64Size

	payloadSize = tsSize + petSize + moneySize + unlockedSize + inventorySize + shopSize +
		poopsSize + historySize + suitersSize + eggSize + alarmSize
)

// Size is the exact length of an encoded save.
const Size = payloadSize + checksumSize

// Year bounds a decoded timestamp may fall in.
const (
	minYear = 1
	maxYear = 9999
)

// Encode serializes s into a fixed array.
func Encode(s SaveFile) ([Size]byte, error) {
	var out [Size]byte
	err := EncodeInto(s, out[:])
	return out, err
}

// EncodeInto serializes s into the first Size bytes of buf.
func EncodeInto(s SaveFile, buf []byte) error {
	if len(buf) < Size {
		return &EncodeError{Field: "buffer", Reason: "needs " + strconv.Itoa(Size) + " bytes, got " + strconv.Itoa(len(buf))}
	}
	e := &encoder{buf: buf[:Size]}
	e.save(&s)
	if e.err != nil {
		return e.err
	}
	binary.LittleEndian.PutUint64(buf[payloadSize:Size], xxhash.Sum64(buf[:payloadSize]))
	return nil
}

// Decode parses an image produced by Encode. Bytes beyond Size are ignored.
func Decode(b []byte) (SaveFile, error) {
	if len(b) < Size {
		return SaveFile{}, &DecodeError{Offset: len(b), Field: "image", Reason: "truncated"}
	}
	b = b[:Size]
	want := binary.LittleEndian.Uint64(b[payloadSize:])
	if got := xxhash.Sum64(b[:payloadSize]); got != want {
		return SaveFile{}, &DecodeError{Offset: payloadSize, Field: "checksum", Reason: "mismatch"}
	}
	d := &decoder{buf: b}
	var s SaveFile
	d.save(&s)
	if d.err != nil {
		return SaveFile{}, d.err
	}
	return s, nil
}

type encoder struct {
	buf []byte
	off int
	err error
}

func (e *encoder) fail(field, reason string) {
	if e.err == nil {
		e.err = &EncodeError{Field: field, Reason: reason}
	}
}

func (e *encoder) u8(v uint8) {
	e.buf[e.off] = v
	e.off++
}

func (e *encoder) boolean(v bool) {
	if v {
		e.u8(1)
		return
	}
	e.u8(0)
}

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.buf[e.off:], v)
	e.off += u16Size
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.buf[e.off:], v)
	e.off += u32Size
}

func (e *encoder) u64(v uint64) {
	binary.LittleEndian.PutUint64(e.buf[e.off:], v)
	e.off += u64Size
}

func (e *encoder) duration(v time.Duration) { e.u64(uint64(v)) }

func (e *encoder) f32(field string, v float32) {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		e.fail(field, "not a finite number")
	}
	e.u32(math.Float32bits(v))
}

func (e *encoder) ts(v timestamp.Timestamp) {
	t := v.Time()
	e.u64(uint64(t.Unix()))
	e.u32(uint32(t.Nanosecond()))
}

func (e *encoder) name(field, v string) {
	if !validName(v) {
		e.fail(field, "name must be at most "+strconv.Itoa(pet.MaxNameLen)+" printable ASCII bytes")
	}
	e.u8(uint8(min(len(v), pet.MaxNameLen)))
	copy(e.buf[e.off:e.off+pet.MaxNameLen], v)
	e.off += pet.MaxNameLen
}

func (e *encoder) defID(field string, v pet.DefID) {
	if !pet.Known(v) {
		e.fail(field, "unknown species")
	}
	e.u16(uint16(v))
}

func (e *encoder) parents(p pet.Parents) {
	e.u64(uint64(p.A))
	e.u64(uint64(p.B))
}

func (e *encoder) save(s *SaveFile) {
	e.ts(s.LastSaved)
	e.pet(&s.Pet)

	if s.Money < 0 || s.Money > economy.MaxMoney {
		e.fail("money", "out of range")
	}
	e.u32(uint32(s.Money))

	if !s.UnlockedFood.Valid() {
		e.fail("unlocked_food", "unknown food bits")
	}
	e.u32(uint32(s.UnlockedFood))

	for _, n := range s.Inventory.Owned {
		if n > item.MaxOwned {
			e.fail("inventory", "count above maximum")
		}
		e.u32(n)
	}
	e.u8(s.Shop.ItemCount)

	for _, slot := range s.Poops {
		e.boolean(slot.Filled)
		e.ts(slot.Poop.Spawned)
	}

	if int(s.PetHistory.Len) > pet.HistorySize {
		e.fail("pet_history", "length above capacity")
	}
	e.u8(s.PetHistory.Len)
	for i := range s.PetHistory.Records {
		e.record(&s.PetHistory.Records[i], i < int(s.PetHistory.Len))
	}

	e.suiters(&s.Suiters)
	e.egg(s.Egg)

	if !s.Alarm.Valid() {
		e.fail("alarm", "time out of range")
	}
	e.boolean(s.Alarm.Enabled)
	e.u8(s.Alarm.Hour)
	e.u8(s.Alarm.Minute)
}

func (e *encoder) pet(p *pet.Instance) {
	e.u64(uint64(p.UPID))
	e.defID("pet.def_id", p.DefID)
	e.name("pet.name", p.Name)

	e.boolean(p.Parents != nil)
	if p.Parents != nil {
		e.parents(*p.Parents)
	} else {
		e.parents(pet.Parents{})
	}

	e.ts(p.Born)
	e.duration(p.Age)
	e.duration(p.SincePoop)
	e.duration(p.SinceGame)
	e.duration(p.Starving)
	e.duration(p.SinceDeathCheck)
	e.f32("pet.stomach", p.Stomach)
	e.f32("pet.extra_weight", p.ExtraWeight)

	if p.StageCount > pet.MaxStages {
		e.fail("pet.stages", "more entries than capacity")
	}
	for _, st := range p.Stages {
		e.u8(uint8(st.Stage))
		e.ts(st.At)
	}
	e.u8(p.StageCount)

	e.boolean(p.Death != nil)
	if p.Death != nil {
		if !pet.ValidCause(p.Death.Cause) {
			e.fail("pet.death", "unknown cause")
		}
		e.u8(uint8(p.Death.Cause))
		e.ts(p.Death.At)
	} else {
		e.u8(0)
		e.ts(timestamp.Timestamp{})
	}

	e.defID("pet.evolve_to", p.EvolveTo)
	e.boolean(p.EvolvePending)
	e.boolean(p.SeenAlien)
}

func (e *encoder) record(r *pet.Record, used bool) {
	e.u64(uint64(r.UPID))
	e.defID("pet_history.def_id", r.DefID)
	e.name("pet_history.name", r.Name)
	e.parents(r.Parents)
	e.ts(r.Born)
	e.ts(r.Died)
	if used && !pet.ValidCause(r.Cause) {
		e.fail("pet_history.cause", "unknown cause")
	}
	e.u8(uint8(r.Cause))
	e.f32("pet_history.extra_weight", r.ExtraWeight)
}

func (e *encoder) suiters(s *suiter.System) {
	sr := suiter.Suiter{}
	if s.Suiter != nil {
		sr = *s.Suiter
	}
	e.boolean(s.Suiter != nil)
	e.defID("suiter.def_id", sr.DefID)
	e.u64(uint64(sr.UPID))
	e.name("suiter.name", sr.Name)
	e.duration(sr.Waiting)
	e.duration(s.WaitingForSuiter)
}

func (e *encoder) egg(egg *pet.Egg) {
	g := pet.Egg{}
	if egg != nil {
		g = *egg
	}
	e.boolean(egg != nil)
	e.u64(uint64(g.UPID))
	e.defID("egg.def_id", g.DefID)
	e.parents(g.Parents)
	e.ts(g.Laid)
	e.duration(g.Incubated)
}

type decoder struct {
	buf []byte
	off int
	err error
}

func (d *decoder) fail(field, reason string) {
	if d.err == nil {
		d.err = &DecodeError{Offset: d.off, Field: field, Reason: reason}
	}
}

func (d *decoder) u8() uint8 {
	v := d.buf[d.off]
	d.off++
	return v
}

func (d *decoder) boolean(field string) bool {
	switch d.u8() {
	case 0:
		return false
	case 1:
		return true
	}
	d.fail(field, "bool is neither 0 nor 1")
	return false
}

func (d *decoder) u16() uint16 {
	v := binary.LittleEndian.Uint16(d.buf[d.off:])
	d.off += u16Size
	return v
}

func (d *decoder) u32() uint32 {
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += u32Size
	return v
}

func (d *decoder) u64() uint64 {
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += u64Size
	return v
}

func (d *decoder) duration() time.Duration { return time.Duration(d.u64()) }

func (d *decoder) f32(field string) float32 {
	v := math.Float32frombits(d.u32())
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		d.fail(field, "not a finite number")
	}
	return v
}

func (d *decoder) ts(field string) timestamp.Timestamp {
	sec := int64(d.u64())
	nanos := d.u32()
	if nanos >= uint32(time.Second) {
		d.fail(field, "nanoseconds out of range")
		return timestamp.Timestamp{}
	}
	t := time.Unix(sec, int64(nanos)).UTC()
	if t.Year() < minYear || t.Year() > maxYear {
		d.fail(field, "year out of range")
		return timestamp.Timestamp{}
	}
	return timestamp.FromTime(t)
}

func (d *decoder) name(field string) string {
	n := int(d.u8())
	raw := d.buf[d.off : d.off+pet.MaxNameLen]
	d.off += pet.MaxNameLen
	if n > pet.MaxNameLen {
		d.fail(field, "name length above maximum")
		return ""
	}
	s := string(raw[:n])
	if !validName(s) {
		d.fail(field, "name is not printable ASCII")
	}
	return s
}

func (d *decoder) defID(field string) pet.DefID {
	v := pet.DefID(d.u16())
	if !pet.Known(v) {
		d.fail(field, "unknown species")
	}
	return v
}

func (d *decoder) parents() pet.Parents {
	return pet.Parents{A: pet.UPID(d.u64()), B: pet.UPID(d.u64())}
}

func (d *decoder) save(s *SaveFile) {
	s.LastSaved = d.ts("last_saved")
	d.pet(&s.Pet)

	money := int32(d.u32())
	if money < 0 || economy.Money(money) > economy.MaxMoney {
		d.fail("money", "out of range")
	}
	s.Money = economy.Money(money)

	s.UnlockedFood = item.UnlockedFood(d.u32())
	if !s.UnlockedFood.Valid() {
		d.fail("unlocked_food", "unknown food bits")
	}

	for i := range s.Inventory.Owned {
		s.Inventory.Owned[i] = d.u32()
		if s.Inventory.Owned[i] > item.MaxOwned {
			d.fail("inventory", "count above maximum")
		}
	}
	s.Shop.ItemCount = d.u8()

	for i := range s.Poops {
		s.Poops[i].Filled = d.boolean("poops.filled")
		s.Poops[i].Poop.Spawned = d.ts("poops.spawned")
	}

	s.PetHistory.Len = d.u8()
	if int(s.PetHistory.Len) > pet.HistorySize {
		d.fail("pet_history", "length above capacity")
	}
	for i := range s.PetHistory.Records {
		d.record(&s.PetHistory.Records[i], i < int(s.PetHistory.Len))
	}

	d.suiters(&s.Suiters)
	s.Egg = d.egg()

	s.Alarm.Enabled = d.boolean("alarm.enabled")
	s.Alarm.Hour = d.u8()
	s.Alarm.Minute = d.u8()
	if !s.Alarm.Valid() {
		d.fail("alarm", "time out of range")
	}
}

func (d *decoder) pet(p *pet.Instance) {
	p.UPID = pet.UPID(d.u64())
	p.DefID = d.defID("pet.def_id")
	p.Name = d.name("pet.name")

	hasParents := d.boolean("pet.parents")
	parents := d.parents()
	if hasParents {
		p.Parents = &parents
	}

	p.Born = d.ts("pet.born")
	p.Age = d.duration()
	p.SincePoop = d.duration()
	p.SinceGame = d.duration()
	p.Starving = d.duration()
	p.SinceDeathCheck = d.duration()
	p.Stomach = d.f32("pet.stomach")
	p.ExtraWeight = d.f32("pet.extra_weight")

	for i := range p.Stages {
		p.Stages[i].Stage = pet.LifeStage(d.u8())
		if p.Stages[i].Stage > pet.StageAdult {
			d.fail("pet.stages", "unknown life stage")
		}
		p.Stages[i].At = d.ts("pet.stages")
	}
	p.StageCount = d.u8()
	if p.StageCount > pet.MaxStages {
		d.fail("pet.stages", "more entries than capacity")
	}

	dead := d.boolean("pet.death")
	cause := pet.DeathCause(d.u8())
	at := d.ts("pet.death")
	if dead {
		if !pet.ValidCause(cause) {
			d.fail("pet.death", "unknown cause")
		}
		p.Death = &pet.Death{Cause: cause, At: at}
	}

	p.EvolveTo = d.defID("pet.evolve_to")
	p.EvolvePending = d.boolean("pet.evolve_pending")
	p.SeenAlien = d.boolean("pet.seen_alien")
}

func (d *decoder) record(r *pet.Record, used bool) {
	r.UPID = pet.UPID(d.u64())
	r.DefID = d.defID("pet_history.def_id")
	r.Name = d.name("pet_history.name")
	r.Parents = d.parents()
	r.Born = d.ts("pet_history.born")
	r.Died = d.ts("pet_history.died")
	r.Cause = pet.DeathCause(d.u8())
	if used && !pet.ValidCause(r.Cause) {
		d.fail("pet_history.cause", "unknown cause")
	}
	r.ExtraWeight = d.f32("pet_history.extra_weight")
}

func (d *decoder) suiters(s *suiter.System) {
	present := d.boolean("suiter")
	sr := suiter.Suiter{
		DefID:   d.defID("suiter.def_id"),
		UPID:    pet.UPID(d.u64()),
		Name:    d.name("suiter.name"),
		Waiting: d.duration(),
	}
	if present {
		s.Suiter = &sr
	}
	s.WaitingForSuiter = d.duration()
}

func (d *decoder) egg() *pet.Egg {
	present := d.boolean("egg")
	g := pet.Egg{
		UPID:      pet.UPID(d.u64()),
		DefID:     d.defID("egg.def_id"),
		Parents:   d.parents(),
		Laid:      d.ts("egg.laid"),
		Incubated: d.duration(),
	}
	if !present {
		return nil
	}
	return &g
}

func validName(s string) bool {
	if len(s) > pet.MaxNameLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

package scene

import (
	"fmt"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/alarm"
	"github.com/MRamiBalles/sdop/internal/input"
)

type alarmField uint8

const (
	fieldHour alarmField = iota
	fieldMinute
	fieldEnabled
	fieldSave
)

// AlarmSet edits a copy of the alarm config and applies it on save.
type AlarmSet struct {
	field alarmField
	draft alarm.Config
}

func NewAlarmSet() *AlarmSet { return &AlarmSet{} }

func (*AlarmSet) Kind() Kind { return KindAlarmSet }
func (*AlarmSet) isScene()   {}

func (s *AlarmSet) setup(args *Args) {
	s.field = fieldHour
	s.draft = args.Ctx.Alarm.Config
}

func (s *AlarmSet) tick(args *Args) Output {
	in := args.Input
	step := 0
	switch {
	case in.Pressed(input.Left):
		step = -1
	case in.Pressed(input.Right):
		step = 1
	case in.Pressed(input.Middle):
		if s.field == fieldSave {
			args.Ctx.Alarm = alarm.NewState(s.draft)
			return GoHome()
		}
		s.field++
		return Remain()
	}
	if step == 0 {
		return Remain()
	}
	switch s.field {
	case fieldHour:
		s.draft.Hour = uint8(cycle(int(s.draft.Hour), step, 24))
	case fieldMinute:
		s.draft.Minute = uint8(cycle(int(s.draft.Minute), step, 60))
	case fieldEnabled:
		s.draft.Enabled = !s.draft.Enabled
	case fieldSave:
		return GoHome()
	}
	return Remain()
}

func (s *AlarmSet) teardown(args *Args) {}

func (s *AlarmSet) render(f *display.Frame, args *Args) {
	f.Text(4, 4, "ALARM")
	f.Text(4, 24, fmt.Sprintf("%02d:%02d", s.draft.Hour, s.draft.Minute))
	if s.draft.Enabled {
		f.Text(4, 40, "ON")
	} else {
		f.Text(4, 40, "OFF")
	}
	f.Text(4, 60, "SAVE")
	cursorY := [...]float32{fieldHour: 34, fieldMinute: 34, fieldEnabled: 50, fieldSave: 70}
	cursorX := float32(4)
	if s.field == fieldMinute {
		cursorX = 22
	}
	f.Sprite("cursor", geoVec(cursorX, cursorY[s.field]), 0)
}

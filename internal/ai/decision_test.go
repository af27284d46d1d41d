package ai

import (
	"testing"

	"github.com/skillmine/core/internal/model"
)

func TestDecide(t *testing.T) {
	// A wolf-shaped baseline: aggro 15, attack range 2.5.
	base := Inputs{
		AggroRange:  15,
		AttackRange: 2.5,
		AttackReady: true,
	}
	at := func(state model.AIState, targetX float64) Inputs {
		in := base
		in.State = state
		in.HasTarget = true
		in.TargetPos = model.Vec2{X: targetX}
		return in
	}

	tests := []struct {
		name string
		in   Inputs
		want Decision
	}{
		{
			name: "idle stays put",
			in:   func() Inputs { in := base; in.State = model.StateIdle; return in }(),
			want: Decision{Next: model.StateIdle},
		},
		{
			name: "idle spots target in aggro range",
			in:   at(model.StateIdle, 10),
			want: Decision{Next: model.StateChase},
		},
		{
			name: "idle ignores target beyond aggro range",
			in:   at(model.StateIdle, 20),
			want: Decision{Next: model.StateIdle},
		},
		{
			name: "idle ignores dead target",
			in: func() Inputs {
				in := at(model.StateIdle, 10)
				in.TargetDead = true
				return in
			}(),
			want: Decision{Next: model.StateIdle},
		},
		{
			name: "idle rolls into patrol",
			in: func() Inputs {
				in := base
				in.State = model.StateIdle
				in.PatrolRoll = true
				return in
			}(),
			want: Decision{Next: model.StatePatrol, Action: ActionPlotPatrol},
		},
		{
			name: "patrol without route plots one",
			in:   func() Inputs { in := base; in.State = model.StatePatrol; return in }(),
			want: Decision{Next: model.StatePatrol, Action: ActionPlotPatrol},
		},
		{
			name: "patrol walks toward waypoint at half speed",
			in: func() Inputs {
				in := base
				in.State = model.StatePatrol
				in.HasRoute = true
				in.WayPoint = model.Vec2{X: 4}
				return in
			}(),
			want: Decision{
				Next: model.StatePatrol, Action: ActionMove,
				Dest: model.Vec2{X: 4}, SpeedScale: PatrolSpeedScale,
			},
		},
		{
			name: "patrol advances on arrival",
			in: func() Inputs {
				in := base
				in.State = model.StatePatrol
				in.HasRoute = true
				in.WayPoint = model.Vec2{X: 0.3}
				return in
			}(),
			want: Decision{Next: model.StatePatrol, Action: ActionAdvancePatrol},
		},
		{
			name: "patrol breaks off when target appears",
			in: func() Inputs {
				in := at(model.StatePatrol, 5)
				in.HasRoute = true
				in.WayPoint = model.Vec2{X: 4}
				return in
			}(),
			want: Decision{Next: model.StateChase},
		},
		{
			name: "chase without target goes idle",
			in:   func() Inputs { in := base; in.State = model.StateChase; return in }(),
			want: Decision{Next: model.StateIdle},
		},
		{
			name: "chase gives up beyond the leash",
			in:   at(model.StateChase, 23), // 15 × 1.5 = 22.5
			want: Decision{Next: model.StateIdle},
		},
		{
			name: "chase closes in",
			in:   at(model.StateChase, 10),
			want: Decision{
				Next: model.StateChase, Action: ActionMove,
				Dest: model.Vec2{X: 10}, SpeedScale: 1.0,
			},
		},
		{
			name: "chase in reach starts attacking",
			in:   at(model.StateChase, 2),
			want: Decision{Next: model.StateAttack},
		},
		{
			name: "attack swings when ready",
			in:   at(model.StateAttack, 2),
			want: Decision{Next: model.StateAttack, Action: ActionAttack},
		},
		{
			name: "attack waits out the swing timer",
			in: func() Inputs {
				in := at(model.StateAttack, 2)
				in.AttackReady = false
				return in
			}(),
			want: Decision{Next: model.StateAttack},
		},
		{
			name: "attack falls back to chase with hysteresis",
			in:   at(model.StateAttack, 3.1), // 2.5 × 1.2 = 3.0
			want: Decision{Next: model.StateChase},
		},
		{
			name: "attack target died",
			in: func() Inputs {
				in := at(model.StateAttack, 2)
				in.TargetDead = true
				return in
			}(),
			want: Decision{Next: model.StateIdle},
		},
		{
			name: "flee runs away half again as fast",
			in:   at(model.StateFlee, 5),
			want: Decision{
				Next: model.StateFlee, Action: ActionMove,
				Dest: model.Vec2{X: 5}, SpeedScale: FleeSpeedScale, Away: true,
			},
		},
		{
			name: "flee calms down at safe distance",
			in:   at(model.StateFlee, 31), // 15 × 2 = 30
			want: Decision{Next: model.StateIdle},
		},
		{
			name: "stun freezes the state machine",
			in: func() Inputs {
				in := at(model.StateAttack, 2)
				in.Stunned = true
				return in
			}(),
			want: Decision{Next: model.StateAttack},
		},
		{
			name: "dead enemies do nothing",
			in:   func() Inputs { in := base; in.State = model.StateDead; return in }(),
			want: Decision{Next: model.StateDead},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.in); got != tt.want {
				t.Errorf("Decide() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

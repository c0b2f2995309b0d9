package fsm

import "testing"

const (
	stateIdle StateID = iota + 1
	stateRun
	stateDone
)

const triggerGo Trigger = iota + 1

type fsmCtx struct {
	log   []string
	ready bool
	ticks int
}

func buildMachine(t *testing.T, ctx *fsmCtx) *Machine[*fsmCtx] {
	t.Helper()
	m := NewMachine[*fsmCtx]()
	m.AddState(stateIdle, "idle").Exit(func(c *fsmCtx) { c.log = append(c.log, "exit-idle") })
	m.AddState(stateRun, "run").
		Enter(func(c *fsmCtx) { c.log = append(c.log, "enter-run") }).
		Update(func(c *fsmCtx) { c.ticks++ })
	m.AddState(stateDone, "done").Enter(func(c *fsmCtx) { c.log = append(c.log, "enter-done") })

	m.AddTransition(stateIdle, Transition[*fsmCtx]{TargetID: stateRun, Trigger: triggerGo})
	m.AddTransition(stateRun, Transition[*fsmCtx]{
		TargetID: stateDone,
		Trigger:  TriggerTick,
		Guard:    func(c *fsmCtx) bool { return c.ready },
	})

	if err := m.Init(ctx, stateIdle); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m
}

func TestMachineTransitions(t *testing.T) {
	ctx := &fsmCtx{}
	m := buildMachine(t, ctx)

	if m.Fire(ctx, Trigger(99)) {
		t.Error("unknown trigger should not transition")
	}
	if !m.Fire(ctx, triggerGo) || !m.Is(stateRun) {
		t.Fatalf("expected run, got %s", m.CurrentName())
	}

	m.Update(ctx)
	if !m.Is(stateRun) {
		t.Fatal("guard should block tick transition")
	}
	if ctx.ticks != 1 {
		t.Errorf("update actions ran %d times, want 1", ctx.ticks)
	}

	ctx.ready = true
	m.Update(ctx)
	if !m.Is(stateDone) {
		t.Fatalf("expected done, got %s", m.CurrentName())
	}

	want := []string{"exit-idle", "enter-run", "enter-done"}
	if len(ctx.log) != len(want) {
		t.Fatalf("log = %v, want %v", ctx.log, want)
	}
	for i := range want {
		if ctx.log[i] != want[i] {
			t.Fatalf("log = %v, want %v", ctx.log, want)
		}
	}
	m.Update(ctx)
	if ctx.ticks != 2 {
		t.Errorf("run update ran outside its state: %d", ctx.ticks)
	}

	if err := m.Reset(ctx); err != nil || !m.Is(stateIdle) {
		t.Errorf("Reset: err=%v state=%s", err, m.CurrentName())
	}
}

func TestMachineInitValidates(t *testing.T) {
	m := NewMachine[*fsmCtx]()
	if err := m.Init(&fsmCtx{}, stateIdle); err == nil {
		t.Error("Init should fail without states")
	}
	m.AddState(stateIdle, "idle")
	m.AddTransition(stateIdle, Transition[*fsmCtx]{TargetID: stateDone, Trigger: triggerGo})
	if err := m.Init(&fsmCtx{}, stateIdle); err == nil {
		t.Error("Init should reject dangling transition")
	}
}

package packet

import (
	"testing"

	"go.uber.org/zap"
)

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	var called bool
	reg.Register(MakeCmd(0xE0, 0x2E), []SessionState{StateActive}, func(_ any, _ *Reader) {
		called = true
	})

	if err := reg.Dispatch(nil, StateActive, MakeCmd(0xE0, 0x2E), nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !called {
		t.Fatal("handler not called")
	}
}

func TestRegistryStateGating(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register(MakeCmd(0xE0, 0x2E), []SessionState{StateActive}, func(_ any, _ *Reader) {
		t.Fatal("handler must not run outside allowed states")
	})

	if err := reg.Dispatch(nil, StateConnecting, MakeCmd(0xE0, 0x2E), nil); err == nil {
		t.Fatal("expected state-gating error")
	}
}

func TestRegistryFallback(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	var fellBack bool
	reg.SetFallback(func(_ any, _ *Reader) { fellBack = true })

	if err := reg.Dispatch(nil, StateActive, MakeCmd(0x99, 0x99), nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !fellBack {
		t.Fatal("fallback not called")
	}
}

func TestRegistryRecoversPanic(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register(MakeCmd(0xE0, 0x2E), []SessionState{StateActive}, func(_ any, _ *Reader) {
		panic("bad packet")
	})

	if err := reg.Dispatch(nil, StateActive, MakeCmd(0xE0, 0x2E), nil); err == nil {
		t.Fatal("expected error from recovered panic")
	}
}

package runtime

import (
	"context"

	"github.com/aretw0/hxnotify/pkg/domain"
)

type hookSet []domain.LifecycleHooks

func (hs hookSet) signal(ctx context.Context, sig *domain.Signal) {
	for _, h := range hs {
		if h.OnSignal != nil {
			h.OnSignal(ctx, sig)
		}
	}
}

func (hs hookSet) decision(ctx context.Context, swap *domain.Swap, d domain.Decision) {
	for _, h := range hs {
		if h.OnDecision != nil {
			h.OnDecision(ctx, swap, d)
		}
	}
}

func (hs hookSet) event(ctx context.Context, evt domain.AppEvent) {
	for _, h := range hs {
		if h.OnEvent != nil {
			h.OnEvent(ctx, evt)
		}
	}
}

func (hs hookSet) alert(ctx context.Context, msg string) {
	for _, h := range hs {
		if h.OnAlert != nil {
			h.OnAlert(ctx, msg)
		}
	}
}

func (hs hookSet) effectError(ctx context.Context, kind domain.SignalKind, err error) {
	for _, h := range hs {
		if h.OnEffectError != nil {
			h.OnEffectError(ctx, kind, err)
		}
	}
}

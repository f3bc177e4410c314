package stack

import (
	"reflect"
	"sync"
	"testing"

	errs "github.com/matzehuels/cardstack/pkg/errors"
)

func TestNewLayoutRejectsInvalidConfig(t *testing.T) {
	if _, err := NewLayout(Config{}); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("NewLayout(Config{}) error = %v, want %v", err, errs.ErrCodeInvalidConfig)
	}
}

func TestLayoutFrameMatchesCompute(t *testing.T) {
	l, err := NewLayout(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	vp := scenarioViewport(150)
	if got, want := l.Frame(vp), Compute(DefaultConfig(), vp); !reflect.DeepEqual(got, want) {
		t.Errorf("Frame() = %+v, want %+v", got, want)
	}
	// Second call is served from the cached pass and must be identical.
	if got, want := l.Frame(vp), Compute(DefaultConfig(), vp); !reflect.DeepEqual(got, want) {
		t.Errorf("cached Frame() = %+v, want %+v", got, want)
	}
}

func TestLayoutCachedFrameIsCopy(t *testing.T) {
	l, _ := NewLayout(DefaultConfig())
	vp := scenarioViewport(0)

	f := l.Frame(vp)
	f.Items[0].Opacity = 0.25

	if got := l.Frame(vp).Items[0].Opacity; got != 1 {
		t.Errorf("cached Opacity = %v, want 1 (caller mutation leaked)", got)
	}
}

func TestLayoutSetConfig(t *testing.T) {
	l, _ := NewLayout(DefaultConfig())
	var reasons []Reason
	l.Subscribe(func(r Reason) { reasons = append(reasons, r) })

	vp := scenarioViewport(0)
	before := l.Frame(vp)

	cfg := DefaultConfig()
	cfg.Spacing = 30
	if err := l.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	after := l.Frame(vp)

	if reflect.DeepEqual(before, after) {
		t.Error("Frame() unchanged after SetConfig")
	}
	if !reflect.DeepEqual(reasons, []Reason{ReasonConfig}) {
		t.Errorf("reasons = %v, want [config]", reasons)
	}

	// Same config again: no notification.
	if err := l.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if len(reasons) != 1 {
		t.Errorf("identical SetConfig notified: %v", reasons)
	}
}

func TestLayoutSetConfigInvalid(t *testing.T) {
	l, _ := NewLayout(DefaultConfig())
	notified := false
	l.Subscribe(func(Reason) { notified = true })

	bad := DefaultConfig()
	bad.ScaleFactor = 2
	if err := l.SetConfig(bad); err == nil {
		t.Fatal("SetConfig(invalid) = nil, want error")
	}
	if l.Config() != DefaultConfig() {
		t.Error("invalid SetConfig mutated the layout")
	}
	if notified {
		t.Error("invalid SetConfig notified subscribers")
	}
}

func TestLayoutInvalidationReasons(t *testing.T) {
	l, _ := NewLayout(DefaultConfig())
	var reasons []Reason
	cancel := l.Subscribe(func(r Reason) { reasons = append(reasons, r) })

	old, updated := scenarioViewport(0), scenarioViewport(10)
	if !l.ShouldInvalidateForBoundsChange(old, updated) {
		t.Error("ShouldInvalidateForBoundsChange = false, want true")
	}
	l.BoundsChanged(old, updated)
	l.Invalidate()

	cancel()
	l.Invalidate()

	want := []Reason{ReasonBounds, ReasonExplicit}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("reasons = %v, want %v", reasons, want)
	}
}

func TestLayoutAttributesForItem(t *testing.T) {
	l, _ := NewLayout(DefaultConfig())
	vp := scenarioViewport(300)

	it, ok := l.AttributesForItem(2, vp)
	if !ok {
		t.Fatal("AttributesForItem(2) not found")
	}
	if it.Depth != 1 {
		t.Errorf("Depth = %d, want 1", it.Depth)
	}
	if _, ok := l.AttributesForItem(0, vp); ok {
		t.Error("AttributesForItem(0) found a card that already left the stack")
	}
	if n := len(l.Attributes(vp)); n != 4 {
		t.Errorf("len(Attributes()) = %d, want 4", n)
	}
}

func TestLayoutAttributesInRect(t *testing.T) {
	l, _ := NewLayout(DefaultConfig())
	vp := scenarioViewport(0)

	all := l.AttributesInRect(Rect{Width: 300, Height: 600}, vp)
	// The deepest card is fully transparent at rest.
	if len(all) != 3 {
		t.Errorf("len(AttributesInRect(viewport)) = %d, want 3", len(all))
	}
	none := l.AttributesInRect(Rect{X: 1000, Width: 10, Height: 10}, vp)
	if len(none) != 0 {
		t.Errorf("len(AttributesInRect(outside)) = %d, want 0", len(none))
	}
}

func TestLayoutConcurrentReaders(t *testing.T) {
	l, _ := NewLayout(DefaultConfig())
	want := Compute(DefaultConfig(), scenarioViewport(75))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := l.Frame(scenarioViewport(75)); !reflect.DeepEqual(got, want) {
					t.Error("concurrent Frame() mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestReasonString(t *testing.T) {
	tests := map[Reason]string{
		ReasonConfig:   "config",
		ReasonBounds:   "bounds",
		ReasonExplicit: "explicit",
		Reason(0):      "unknown",
	}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("Reason(%d).String() = %q, want %q", int(r), got, want)
		}
	}
}

package coupler

import (
	"testing"

	"github.com/matzehuels/fiberroute/pkg/component"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
)

func TestTemplateOffset(t *testing.T) {
	te := TE()
	if got := te.Offset(); got != te.Cell.XSize()/2 {
		t.Errorf("TE Offset() = %v, want half width %v", got, te.Cell.XSize()/2)
	}
	if got := TM().Offset(); got != 26 {
		t.Errorf("TM Offset() = %v, want 26", got)
	}
}

func TestTemplateLabelFields(t *testing.T) {
	te := TE()
	if te.WavelengthNM() != 1530 || te.Polarization != "te" {
		t.Errorf("TE = %d nm %s, want 1530 nm te", te.WavelengthNM(), te.Polarization)
	}
	if p := te.Port(); p.Name != "o1" || p.Facing() != component.West {
		t.Errorf("TE port = %+v, want o1 facing west", p)
	}
}

func TestTemplateValidate(t *testing.T) {
	bad := &Template{Cell: component.Pad(80), PortName: "e1"}
	if err := bad.Validate(); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("electrical port: got %v, want INVALID_INPUT", err)
	}
	missing := &Template{Cell: TE().Cell, PortName: "nope"}
	if err := missing.Validate(); err == nil {
		t.Error("missing port should fail")
	}
	var nilT *Template
	if err := nilT.Validate(); err == nil {
		t.Error("nil template should fail")
	}
}

func TestSpecResolve(t *testing.T) {
	te, tm := TE(), TM()

	tests := []struct {
		name    string
		spec    Spec
		n       int
		wantLen int
		wantErr bool
	}{
		{"single repeats", Single(te), 4, 4, false},
		{"single with no ports", Single(te), 0, 1, false},
		{"per-port exact", PerPort(te, tm, te), 3, 3, false},
		{"per-port surplus", PerPort(te, tm, te, tm), 2, 4, false},
		{"per-port short", PerPort(te), 2, 0, true},
		{"empty", Spec{}, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Resolve(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len(Resolve(%d)) = %d, want %d", tt.n, len(got), tt.wantLen)
			}
		})
	}
}

func TestSpecResolveOrder(t *testing.T) {
	te, tm := TE(), TM()
	got, err := PerPort(tm, te).Resolve(2)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != tm || got[1] != te {
		t.Errorf("Resolve() reordered templates: %s, %s", got[0].Name(), got[1].Name())
	}

	given := []*Template{te, tm}
	s := PerPort(given...)
	resolved, _ := s.Resolve(2)
	resolved[0] = nil
	if s.Templates()[0] != te {
		t.Error("Resolve() result aliases the Spec templates")
	}
}

func TestSpecString(t *testing.T) {
	if got := Single(TE()).String(); got != "single(grating_coupler_te)" {
		t.Errorf("String() = %q", got)
	}
	if got := PerPort(TE(), TM()).String(); got != "per-port(2)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPreset(t *testing.T) {
	if _, err := Preset("te"); err != nil {
		t.Errorf("Preset(te) error = %v", err)
	}
	if _, err := Preset("xx"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Preset(xx) error = %v, want NOT_FOUND", err)
	}
}

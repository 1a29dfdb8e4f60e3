package settings

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func randomSettings(rng *rand.Rand) Settings {
	s := Settings{
		Tools: ToolSettings{
			IsMuted: rng.Intn(2) == 0,
			ShowFPS: rng.Intn(2) == 0,
		},
		Controls: ControlSettings{
			Enabled: rng.Intn(2) == 0,
			Alpha:   CoerceAlpha(rng.Float64()),
		},
		System: SystemSettings{Locale: []string{"en", "es", "pt-BR", ""}[rng.Intn(4)]},
	}
	for _, t := range ControlTypes {
		s.Controls.Items = append(s.Controls.Items, ControlItem{
			Type:    t,
			Enabled: rng.Intn(2) == 0,
			Alpha:   CoerceAlpha(rng.Float64()),
			Code:    rng.Intn(256),
		})
	}
	for _, t := range PositionTypes {
		s.Controls.Positions = append(s.Controls.Positions, PositionableItem{
			Type: t,
			X:    rng.Float64(),
			Y:    rng.Float64(),
		})
	}
	return s
}

func TestRecordRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		want := randomSettings(rng)
		got, err := ToDomain(ToRecord(want))
		if err != nil {
			t.Fatalf("ToDomain() failed: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("record round trip mismatch:\n got %+v\nwant %+v", got, want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	cases := []Settings{Defaults("en")}
	for i := 0; i < 100; i++ {
		cases = append(cases, randomSettings(rng))
	}
	// Alpha boundaries.
	edge := Defaults("en")
	edge.Controls.Alpha = CoerceAlpha(0)
	edge.Controls.Items[0].Alpha = CoerceAlpha(1)
	cases = append(cases, edge)

	for _, want := range cases {
		data, err := Encode(want)
		if err != nil {
			t.Fatalf("Encode() failed: %v", err)
		}
		got, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode() failed: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("encode round trip mismatch:\n got %+v\nwant %+v", got, want)
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	a, err := Encode(Defaults("en"))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	b, err := Encode(Defaults("en"))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if string(a) != string(b) {
		t.Error("encoding the same settings twice produced different bytes")
	}
}

func TestToDomainUnknownType(t *testing.T) {
	r := ToRecord(Defaults("en"))
	r.Controls.Items = append(r.Controls.Items, ItemRecord{Type: 99})

	if _, err := ToDomain(r); !errors.Is(err, ErrUnknownType) {
		t.Errorf("ToDomain() error = %v, want ErrUnknownType", err)
	}

	r = ToRecord(Defaults("en"))
	r.Controls.Positions[0].Type = -1
	if _, err := ToDomain(r); !errors.Is(err, ErrUnknownType) {
		t.Errorf("ToDomain() error = %v, want ErrUnknownType", err)
	}
}

func TestToDomainClampsAlpha(t *testing.T) {
	r := ToRecord(Defaults("en"))
	r.Controls.Alpha = 3
	r.Controls.Items[0].Alpha = -1

	s, err := ToDomain(r)
	if err != nil {
		t.Fatalf("ToDomain() failed: %v", err)
	}
	if s.Controls.Alpha.Float() != 1 {
		t.Errorf("controls alpha = %v, want 1", s.Controls.Alpha)
	}
	if s.Controls.Items[0].Alpha.Float() != 0 {
		t.Errorf("item alpha = %v, want 0", s.Controls.Items[0].Alpha)
	}
}

func TestDecodeGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, {}, []byte("not settings"), {0xff, 0x00, 0x13}} {
		if _, err := Decode(data); err == nil {
			t.Errorf("Decode(%q) should fail", data)
		}
	}
}

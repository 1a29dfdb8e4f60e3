package keyevent

import "testing"

func TestTypeOpposite(t *testing.T) {
	if Down.Opposite() != Up {
		t.Errorf("Down.Opposite() = %v, want Up", Down.Opposite())
	}
	if Up.Opposite() != Down {
		t.Errorf("Up.Opposite() = %v, want Down", Up.Opposite())
	}
}

func TestEqualityIncludesVariant(t *testing.T) {
	k := Key{Code: CodeEnter, Type: Down}

	var a, b, c Event = Input{k}, Input{k}, Graphics{k}
	if a != b {
		t.Error("Input events with identical fields should be equal")
	}
	if a == c {
		t.Error("Input and Graphics events with identical fields should differ")
	}

	d := Input{Key{Code: CodeEnter, Type: Down, Timeout: After(150)}}
	if a == Event(d) {
		t.Error("Events with different timeouts should differ")
	}
	if Event(d) != Event(Input{Key{Code: CodeEnter, Type: Down, Timeout: After(150)}}) {
		t.Error("Events with equal timeouts should be equal")
	}
}

func TestCopyKeepsVariant(t *testing.T) {
	tests := []struct {
		name string
		in   Event
	}{
		{"movement", Movement{Key{Code: CodeUp, Type: Down}}},
		{"input", Input{Key{Code: CodeZ, Type: Down}}},
		{"graphics", Graphics{Key{Code: CodeF2, Type: Down}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Copy(tt.in, WithType(Up), WithTimeout(After(20)))

			switch tt.in.(type) {
			case Movement:
				if _, ok := out.(Movement); !ok {
					t.Fatalf("Copy returned %T, want Movement", out)
				}
			case Input:
				if _, ok := out.(Input); !ok {
					t.Fatalf("Copy returned %T, want Input", out)
				}
			case Graphics:
				if _, ok := out.(Graphics); !ok {
					t.Fatalf("Copy returned %T, want Graphics", out)
				}
			}

			if out.KeyCode() != tt.in.KeyCode() {
				t.Errorf("code = %d, want %d", out.KeyCode(), tt.in.KeyCode())
			}
			if out.KeyType() != Up {
				t.Errorf("type = %v, want Up", out.KeyType())
			}
			if ms, ok := out.KeyTimeout().Millis(); !ok || ms != 20 {
				t.Errorf("timeout = %v, want 20ms", out.KeyTimeout())
			}
		})
	}
}

func TestCopyWithoutOptionsIsEqual(t *testing.T) {
	e := Movement{Key{Code: CodeLeft, Type: Up, Timeout: After(5)}}
	if Copy(e) != Event(e) {
		t.Error("Copy without options should produce an equal event")
	}
}

func TestFactories(t *testing.T) {
	e := InputOf(CodeEscape)(Up, After(150))
	want := Input{Key{Code: CodeEscape, Type: Up, Timeout: After(150)}}
	if e != Event(want) {
		t.Errorf("InputOf() = %v, want %v", e, want)
	}

	if _, ok := MovementOf(CodeUp)(Down, NoTimeout).(Movement); !ok {
		t.Error("MovementOf should build Movement events")
	}
	if _, ok := GraphicsOf(CodeF3)(Down, NoTimeout).(Graphics); !ok {
		t.Error("GraphicsOf should build Graphics events")
	}
}

func TestTimeoutZeroValue(t *testing.T) {
	var to Timeout
	if to.IsSet() {
		t.Error("zero Timeout should be unset")
	}
	if to != NoTimeout {
		t.Error("zero Timeout should equal NoTimeout")
	}
	if !After(0).IsSet() {
		t.Error("After(0) should be set")
	}
}

func TestDirections(t *testing.T) {
	for _, d := range Directions {
		got, ok := DirectionOf(d.Code())
		if !ok || got != d {
			t.Errorf("DirectionOf(%d) = %v, %v; want %v", d.Code(), got, ok, d)
		}
		parsed, ok := ParseDirection(d.Name())
		if !ok || parsed != d {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", d.Name(), parsed, ok, d)
		}
	}

	if _, ok := DirectionOf(CodeEnter); ok {
		t.Error("DirectionOf(Enter) should not resolve")
	}
}

func TestPropertyString(t *testing.T) {
	tests := []struct {
		prop Property
		want string
	}{
		{Property{Name: "keyCode", Value: 13}, "'keyCode': 13"},
		{Property{Name: "key", Value: "Enter"}, "'key': 'Enter'"},
		{Property{Name: "shiftKey", Value: true}, "'shiftKey': true"},
		{PreventDefault, "'preventDefault': function(){return true;}"},
	}

	for _, tt := range tests {
		if got := tt.prop.String(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.prop.Name, got, tt.want)
		}
	}
}

func TestLiteral(t *testing.T) {
	got := Literal(Properties(13))
	want := "{'keyCode': 13, 'preventDefault': function(){return true;}}"
	if got != want {
		t.Errorf("Literal() = %q, want %q", got, want)
	}
}

package layout

import "testing"

func TestValue_Resolve(t *testing.T) {
	type tc struct {
		value     Value
		available float64
		expected  float64
	}

	tests := map[string]tc{
		"pixels ignore available": {
			value:     Pixels(50),
			available: 100,
			expected:  50,
		},
		"pixels may exceed available": {
			value:     Pixels(150),
			available: 100,
			expected:  150,
		},
		"percent of available": {
			value:     Percent(50),
			available: 200,
			expected:  100,
		},
		"fractional percent": {
			value:     Percent(12.5),
			available: 80,
			expected:  10,
		},
		"percent of zero": {
			value:     Percent(100),
			available: 0,
			expected:  0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.value.Resolve(tt.available); got != tt.expected {
				t.Errorf("Resolve(%v) = %v, want %v", tt.available, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	type tc struct {
		input    string
		expected Value
		wantErr  bool
	}

	tests := map[string]tc{
		"bare number is pixels": {input: "12", expected: Pixels(12)},
		"px suffix":             {input: "12.5px", expected: Pixels(12.5)},
		"percent suffix":        {input: "50%", expected: Percent(50)},
		"surrounding space":     {input: " 30 % ", expected: Percent(30)},
		"garbage":               {input: "wide", wantErr: true},
		"empty":                 {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValue_StringRoundTrip(t *testing.T) {
	for _, v := range []Value{Pixels(10), Percent(33.5), Pixels(0)} {
		got, err := Parse(v.String())
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", v.String(), err)
		}
		if got != v {
			t.Errorf("Parse(%q) = %v, want %v", v.String(), got, v)
		}
	}
}

func TestSize2D_Within(t *testing.T) {
	size := Size2D{Width: Percent(50), Height: Pixels(20)}
	got := size.Within(Bounds{Width: 300, Height: 400})
	want := Bounds{Width: 150, Height: 20}
	if got != want {
		t.Errorf("Within() = %+v, want %+v", got, want)
	}
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{Width: 10, Height: 5}
	type tc struct {
		x, y     float64
		expected bool
	}
	tests := map[string]tc{
		"origin":     {0, 0, true},
		"inside":     {9.5, 4.9, true},
		"right edge": {10, 1, false},
		"negative":   {-1, 1, false},
		"below":      {1, 5, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := b.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

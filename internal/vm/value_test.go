package vm

import "testing"

func TestValueEquality(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{"nil == nil", NilVal(), NilVal(), true},
		{"true == true", BoolVal(true), BoolVal(true), true},
		{"true == false", BoolVal(true), BoolVal(false), false},
		{"1 == 1", NumberVal(1), NumberVal(1), true},
		{"1 == 2", NumberVal(1), NumberVal(2), false},
		{"0 == -0", NumberVal(0), NumberVal(-0.0), true},

		// Tag mismatch short-circuits to false regardless of payload
		{"true == 1", BoolVal(true), NumberVal(1), false},
		{"false == 0", BoolVal(false), NumberVal(0), false},
		{"nil == false", NilVal(), BoolVal(false), false},
		{"nil == 0", NilVal(), NumberVal(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("Equals() = %t, want %t", got, tt.want)
			}
			// Equality is symmetric
			if got := tt.b.Equals(tt.a); got != tt.want {
				t.Errorf("reversed Equals() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestValueTruthiness(t *testing.T) {
	tests := []struct {
		name   string
		v      Value
		falsey bool
	}{
		{"nil", NilVal(), true},
		{"false", BoolVal(false), true},
		{"true", BoolVal(true), false},
		{"zero", NumberVal(0), false},
		{"negative", NumberVal(-1), false},
		{"number", NumberVal(3.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFalsey(); got != tt.falsey {
				t.Errorf("IsFalsey() = %t, want %t", got, tt.falsey)
			}
		})
	}
}

func TestValueInspect(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NilVal(), "nil"},
		{BoolVal(true), "true"},
		{BoolVal(false), "false"},
		{NumberVal(3), "3"},
		{NumberVal(2.5), "2.5"},
	}

	for _, tt := range tests {
		if got := tt.v.Inspect(); got != tt.want {
			t.Errorf("Inspect() = %q, want %q", got, tt.want)
		}
	}
}

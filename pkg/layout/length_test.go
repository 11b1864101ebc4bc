package layout

import "testing"

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    Length
		wantErr bool
	}{
		{in: "1in", want: Inch},
		{in: "0.75in", want: 685800},
		{in: "36pt", want: 457200},
		{in: "2.5cm", want: 900000},
		{in: "10mm", want: 360000},
		{in: "96px", want: Inch},
		{in: "914400", want: Inch},
		{in: "12emu", want: 12},
		{in: " 1 IN ", want: Inch},
		{in: "", wantErr: true},
		{in: "wide", wantErr: true},
		{in: "3ft", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLength(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLength(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestLengthConversions(t *testing.T) {
	if Inches(0.5) != 457200 {
		t.Errorf("Inches(0.5) = %d", Inches(0.5))
	}
	if Points(8) != 101600 {
		t.Errorf("Points(8) = %d", Points(8))
	}
	if Pixels(96) != Inch {
		t.Errorf("Pixels(96) = %d", Pixels(96))
	}
	if got := (2 * Inch).Inches(); got != 2 {
		t.Errorf("Inches() = %v", got)
	}
	if got := (18 * Point).Points(); got != 18 {
		t.Errorf("Points() = %v", got)
	}
	if got := Inches(0.75).String(); got != "0.75in" {
		t.Errorf("String() = %q", got)
	}
	if got := Length(1000).Scale(0.5); got != 500 {
		t.Errorf("Scale() = %d", got)
	}
}

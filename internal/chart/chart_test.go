package chart

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/luki/enviro/internal/sensor"
)

func TestFractionFlatWindow(t *testing.T) {
	window := make([]float64, 160)
	for i := range window {
		window[i] = 21.5
	}
	for i, f := range Fraction(window) {
		if f != 0.5 {
			t.Fatalf("Fraction[%d] = %f, want 0.5", i, f)
		}
	}
}

func TestFraction(t *testing.T) {
	got := Fraction([]float64{2, 3, 2, 5, 1})
	want := []float64{0.4, 0.6, 0.4, 1.0, 0.2}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("Fraction[%d] = %f, want %f", i, got[i], want[i])
		}
	}
	if Fraction(nil) != nil {
		t.Error("Fraction(nil) should be nil")
	}
}

func TestHueColor(t *testing.T) {
	tests := []struct {
		f    float64
		want color.RGBA
	}{
		{1.0, color.RGBA{R: 255, G: 0, B: 0, A: 255}},
		{0.0, color.RGBA{R: 0, G: 102, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := HueColor(tt.f); got != tt.want {
			t.Errorf("HueColor(%f) = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	temp := [4]float64{4, 18, 28, 35}
	light := [4]float64{-1, -1, 30000, 100000}

	tests := []struct {
		name   string
		v      float64
		limits [4]float64
		want   Band
	}{
		{"below everything", 2, temp, DangerouslyLow},
		{"on a boundary is not above it", 4, temp, DangerouslyLow},
		{"cool", 10, temp, Low},
		{"comfortable", 21, temp, Normal},
		{"warm", 30, temp, High},
		{"hot", 36, temp, DangerouslyHigh},
		{"dim room", 500, light, Normal},
		{"sunlight", 120000, light, DangerouslyHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.v, tt.limits); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}

	if got := Classify(30, temp); int(got) != 3 || got.String() != "high" {
		t.Errorf("Classify(30) = %d %q, want 3 high", got, got)
	}
}

func TestValidate(t *testing.T) {
	valid := [][4]float64{
		{4, 18, 28, 35},
		{250, 650, 1013.25, 1015},
		{-1, -1, 40, 50},
	}
	for _, l := range valid {
		if err := Validate(l); err != nil {
			t.Errorf("Validate(%v): %v", l, err)
		}
	}

	err := Validate([4]float64{4, 28, 18, 35})
	if !errors.Is(err, ErrNonMonotonic) {
		t.Errorf("Validate(non-monotonic) = %v, want ErrNonMonotonic", err)
	}
}

func TestGridCell(t *testing.T) {
	g := NewGrid(160, 80)

	tests := []struct {
		i, n int
		want image.Point
	}{
		{0, 7, image.Pt(2, 2)},
		{3, 7, image.Pt(2, 62)},
		{4, 7, image.Pt(82, 2)},
		{6, 7, image.Pt(82, 42)},
		{9, 10, image.Pt(82, 66)},
	}
	for _, tt := range tests {
		if got := g.Cell(tt.i, tt.n); got != tt.want {
			t.Errorf("Cell(%d, %d) = %v, want %v", tt.i, tt.n, got, tt.want)
		}
	}
	if g.Rows(7) != 4 || g.Rows(10) != 5 {
		t.Errorf("Rows: got %d and %d, want 4 and 5", g.Rows(7), g.Rows(10))
	}
}

func TestGradientRender(t *testing.T) {
	g := NewGradient(160, 80)
	window := make([]float64, 160)
	for i := range window {
		window[i] = 1
	}
	v := sensor.Variable{Kind: sensor.Temperature, Label: "temperature", Unit: "C", Limits: [4]float64{4, 18, 28, 35}}

	img := g.Render(v, window)
	if img.Bounds() != image.Rect(0, 0, 160, 80) {
		t.Fatalf("bounds: got %v", img.Bounds())
	}

	// flat window: marker at mid-band
	if got := img.RGBAAt(10, 52); got != colorBlack {
		t.Errorf("marker pixel: got %v, want black", got)
	}
	if got, want := img.RGBAAt(10, 30), HueColor(0.5); got != want {
		t.Errorf("strip pixel: got %v, want %v", got, want)
	}
	if got := img.RGBAAt(159, 0); got != colorWhite {
		t.Errorf("header background: got %v, want white", got)
	}

	var ink int
	for y := 0; y < HeaderHeight; y++ {
		for x := 0; x < 160; x++ {
			if img.RGBAAt(x, y) == colorBlack {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("expected header text to be drawn")
	}
}

func TestGridRender(t *testing.T) {
	vars := []sensor.Variable{
		{Kind: sensor.Temperature, Label: "temperature", Unit: "C", Limits: [4]float64{4, 18, 28, 35}},
		{Kind: sensor.Humidity, Label: "humidity", Unit: "%", Limits: [4]float64{20, 30, 60, 70}},
	}
	img := NewGrid(160, 80).Render(vars, []float64{30, 45})

	counts := map[color.RGBA]int{}
	for y := 0; y < 80; y++ {
		for x := 0; x < 160; x++ {
			counts[img.RGBAAt(x, y)]++
		}
	}
	if counts[High.Color()] == 0 {
		t.Error("expected temperature drawn in the high band colour")
	}
	if counts[Normal.Color()] == 0 {
		t.Error("expected humidity drawn in the normal band colour")
	}
	if counts[colorBlack] == 0 {
		t.Error("expected black background")
	}
}

func TestSparkline(t *testing.T) {
	values := []float64{10, 15, 20, 25, 30, 35, 40}
	result := Sparkline(values, 20, [4]float64{4, 18, 28, 35})
	if !strings.Contains(result, "█") || !strings.Contains(result, "▁") {
		t.Errorf("sparkline missing extremes: %q", result)
	}
	t.Logf("Sparkline: %s", result)

	if Sparkline(values, 0, [4]float64{}) != "" {
		t.Error("zero width should render nothing")
	}
}

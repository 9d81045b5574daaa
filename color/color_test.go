package color_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/laurentmuller/calculation-sub010/color"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
	}{
		{"#FF8000", color.RGB(255, 128, 0)},
		{"ff8000", color.RGB(255, 128, 0)},
		{"#f80", color.RGB(255, 136, 0)},
		{" #000000 ", color.Black},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := color.Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
	for _, bad := range []string{"", "#12", "#GGGGGG", "#1234567", "red"} {
		if _, err := color.Parse(bad); !errors.Is(err, color.ErrInvalidColor) {
			t.Fatalf("Parse(%q) error = %v", bad, err)
		}
	}
}

func TestConversions(t *testing.T) {
	c := color.MustParse("#123456")
	if c.Hex() != "#123456" {
		t.Fatalf("Hex = %s", c.Hex())
	}
	if c.Int() != 0x123456 {
		t.Fatalf("Int = %x", c.Int())
	}
	if got := color.FromInt(0x123456); !got.Equal(c) {
		t.Fatalf("FromInt = %v", got)
	}
	r, g, b := c.RGB()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Fatalf("RGB = %d %d %d", r, g, b)
	}
	if c.AsDraw().Role != color.Draw || c.AsText().Role != color.Text || c.AsDraw().AsFill().Role != color.Fill {
		t.Fatal("role conversions")
	}
}

type recorder struct{ calls []string }

func (r *recorder) SetDrawColor(int, int, int) { r.calls = append(r.calls, "draw") }
func (r *recorder) SetFillColor(int, int, int) { r.calls = append(r.calls, "fill") }
func (r *recorder) SetTextColor(int, int, int) { r.calls = append(r.calls, "text") }

func TestApplyByRole(t *testing.T) {
	rec := &recorder{}
	color.Red.AsDraw().Apply(rec)
	color.Red.Apply(rec)
	color.Red.AsText().Apply(rec)
	if diff := cmp.Diff([]string{"draw", "fill", "text"}, rec.calls); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSpecResolve(t *testing.T) {
	fallback := color.DefaultFill
	cases := []struct {
		name string
		spec color.Spec
		want color.Color
	}{
		{"unset", color.Unset(), fallback},
		{"named", color.Named("Red"), color.Red},
		{"named hex", color.Named("#00FF00"), color.RGB(0, 255, 0)},
		{"unknown name", color.Named("mauve-ish"), fallback},
		{"rgb", color.FromRGB(color.Blue.AsDraw()), color.Blue},
		{"hex", color.FromHex("#0000FF"), color.Blue},
		{"bad hex", color.FromHex("zz"), fallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.spec.Resolve(fallback)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
	if color.Unset().IsSet() || !color.Named("x").IsSet() {
		t.Fatal("IsSet")
	}
}

func TestDefaultFillIsDarkGray(t *testing.T) {
	if color.DefaultFill != color.DarkGray {
		t.Fatalf("DefaultFill = %v", color.DefaultFill)
	}
	if c, ok := color.Lookup("dark_gray"); !ok || c != color.DarkGray {
		t.Fatalf("Lookup dark_gray = %v %v", c, ok)
	}
}

package season

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"split season", "2007/08", 2007},
		{"split season four digit tail", "2020/2021", 2020},
		{"plain string", "2015", 2015},
		{"padded string", " 2016 ", 2016},
		{"int", 2015, 2015},
		{"int64", int64(2019), 2019},
		{"integral float", 2011.0, 2011},
		{"fractional float", 2011.5, 0},
		{"garbage", "not-a-year", 0},
		{"garbage before slash", "abc/08", 0},
		{"empty", "", 0},
		{"nil", nil, 0},
		{"unsupported type", []int{2015}, 0},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("%s: Normalize(%v) = %d, want %d", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, raw := range []any{"2007/08", "2015", 2020} {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %v: %d then %d", raw, once, twice)
		}
	}
}

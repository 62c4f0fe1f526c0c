package combat

import (
	"reflect"
	"testing"
)

type scalePush struct {
	scale  float64
	frames int64
}

func TestTimeScaleNesting(t *testing.T) {
	cases := []struct {
		name   string
		pushes []scalePush
		// scale observed after Advance(frame) for frames 1..len(want)
		want []float64
	}{
		{
			name:   "last_expiring_wins_over_last_applied",
			pushes: []scalePush{{0.5, 5}, {0.25, 2}},
			want:   []float64{0.5, 0.5, 0.5, 0.5, 1, 1},
		},
		{
			name:   "later_expiry_takes_over",
			pushes: []scalePush{{0.5, 2}, {0.25, 4}},
			want:   []float64{0.25, 0.25, 0.25, 1, 1},
		},
		{
			name:   "tie_goes_to_latest",
			pushes: []scalePush{{0.5, 3}, {0.75, 3}},
			want:   []float64{0.75, 0.75, 1},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := NewTimeScale(1)
			for _, p := range c.pushes {
				ts.Push(p.scale, p.frames, 0)
			}
			got := make([]float64, 0, len(c.want))
			for f := int64(1); f <= int64(len(c.want)); f++ {
				ts.Advance(f)
				got = append(got, ts.Scale())
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if ts.Active() != 0 {
				t.Fatalf("expected every override to expire, %d left", ts.Active())
			}
		})
	}
}

func TestTimeScaleRestoresOnce(t *testing.T) {
	ts := NewTimeScale(1)
	var changes []float64
	ts.OnChange(func(s float64) { changes = append(changes, s) })

	ts.Push(0.5, 10, 0)
	ts.Push(0.2, 4, 0)
	for f := int64(1); f <= 12; f++ {
		ts.Advance(f)
	}

	want := []float64{0.5, 1}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("expected changes %v, got %v", want, changes)
	}
}

func TestTimeScaleIgnoresInvalidPush(t *testing.T) {
	ts := NewTimeScale(1)
	if id := ts.Push(0, 5, 0); id != 0 {
		t.Fatalf("zero scale should be ignored")
	}
	if id := ts.Push(0.5, 0, 0); id != 0 {
		t.Fatalf("zero duration should be ignored")
	}
	if ts.Scale() != 1 || ts.Active() != 0 {
		t.Fatalf("invalid pushes changed the scale")
	}
}

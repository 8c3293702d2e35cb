package derive

import (
	"reflect"
	"testing"
)

func TestKillStreaks(t *testing.T) {
	cases := []struct {
		name      string
		ts        []float64
		window    float64
		wantEqual []string
	}{
		{"double_kill", []float64{1, 2}, 2, []string{"Double Kill at 1970-01-01 00:00:02"}},
		{"triple_kill", []float64{1, 2, 3}, 2, []string{"Triple Kill at 1970-01-01 00:00:03"}},
		{"quadra_kill", []float64{1, 2, 3, 4}, 2, []string{"Quadra Kill at 1970-01-01 00:00:04"}},
		{"penta_kill", []float64{1, 2, 3, 4, 5}, 2, []string{"Penta Kill at 1970-01-01 00:00:05"}},
		{"no_streak_far_apart", []float64{1, 4}, 2, nil},
		{"no_streak_gaps_exceed_window", []float64{1, 3, 5}, 1, nil},
		{
			"two_double_kills",
			[]float64{1, 2, 5, 6}, 2,
			[]string{"Double Kill at 1970-01-01 00:00:02", "Double Kill at 1970-01-01 00:00:06"},
		},
		{"penta_kill_small_window", []float64{1, 2, 3, 4, 5}, 1, []string{"Penta Kill at 1970-01-01 00:00:05"}},
		{
			"two_triple_kills",
			[]float64{1, 2, 3, 5, 6, 7}, 1,
			[]string{"Triple Kill at 1970-01-01 00:00:03", "Triple Kill at 1970-01-01 00:00:07"},
		},
		{"empty_timestamps", nil, 5, nil},
		{"single_kill_no_streak", []float64{1}, 5, nil},
		{"kills_outside_window", []float64{1, 6, 11, 16, 21}, 4, nil},
		{
			"triple_kill_real_timestamp",
			[]float64{1640995200, 1640995201, 1640995202}, 2,
			[]string{"Triple Kill at 2022-01-01 00:00:02"},
		},
		{"quadra_kill_continuous", []float64{5, 6, 7, 8}, 2, []string{"Quadra Kill at 1970-01-01 00:00:08"}},
		{"penta_kill_continuous", []float64{10, 11, 12, 13, 14}, 1, []string{"Penta Kill at 1970-01-01 00:00:14"}},
		{"quadra_kill_with_gap", []float64{20, 21, 24, 25}, 3, []string{"Quadra Kill at 1970-01-01 00:00:25"}},
		{"penta_kill_with_gap", []float64{30, 31, 32, 34, 35, 37}, 2, []string{"Penta Kill at 1970-01-01 00:00:35"}},
		{"penta_kill_with_gap_end", []float64{60, 61, 62, 63, 64, 66}, 2, []string{"Penta Kill at 1970-01-01 00:01:04"}},
		{"quadra_kill_small_window", []float64{90, 91, 92, 93}, 1, []string{"Quadra Kill at 1970-01-01 00:01:33"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := KillStreaks(tc.ts, tc.window)
			if len(got) == 0 && len(tc.wantEqual) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.wantEqual) {
				t.Errorf("KillStreaks(%v, %v) = %v, want %v", tc.ts, tc.window, got, tc.wantEqual)
			}
		})
	}
}

func TestKillStreaksSixKillRun(t *testing.T) {
	// A run of 6 within the window emits a Penta Kill for the first five,
	// then a lone sixth kill that emits nothing.
	ts := []float64{1, 2, 3, 4, 5, 6}
	got := KillStreaks(ts, 2)
	want := []string{"Penta Kill at 1970-01-01 00:00:05"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KillStreaks(6-run) = %v, want %v", got, want)
	}
}

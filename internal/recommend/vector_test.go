// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"reflect"
	"testing"

	"github.com/tomtom215/giftmatch/internal/profile"
)

func TestFromSlots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   SlotInput
		want []profile.Dimension
	}{
		{
			name: "full input",
			in:   SlotInput{Age: "65_plus", Gender: "female", Occasion: "mothers_day", Interests: []string{"home_decor", "health"}},
			want: []profile.Dimension{profile.Age65Plus, profile.GenderFemale, profile.OccasionMothersDay, profile.InterestHealth, profile.InterestHomeDecor},
		},
		{
			name: "unknown interests ignored",
			in:   SlotInput{Interests: []string{"knitting", "music", ""}},
			want: []profile.Dimension{profile.InterestMusic},
		},
		{
			name: "value from wrong group ignored",
			in:   SlotInput{Gender: "birthday", Occasion: "male"},
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := FromSlots(tt.in)
			got := v.Active()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
			for _, d := range got {
				if v[d] != 1.0 {
					t.Errorf("%s weight = %v, want 1.0", d, v[d])
				}
			}
		})
	}
}

func TestFromProfile(t *testing.T) {
	t.Parallel()

	var p profile.Profile
	p.Set(profile.Age13To18, true)
	p.Set(profile.InterestTechnology, true)

	v := FromProfile(p)
	if len(v.Map()) != profile.NumDimensions {
		t.Fatalf("Map() has %d keys", len(v.Map()))
	}
	if v[profile.Age13To18] != 1 || v[profile.InterestTechnology] != 1 {
		t.Error("set flags not mapped to 1.0")
	}
	if got := len(v.Active()); got != 2 {
		t.Errorf("Active() has %d entries, want 2", got)
	}
	if len(FromProfile(profile.Profile{}).Active()) != 0 {
		t.Error("empty profile produced active dimensions")
	}
}

package service

import (
	"sort"
	"time"
)

// TripWindow is the nominal departure/return pair configured by the operator.
type TripWindow struct {
	Departure time.Time
	Return    time.Time
}

// DateCombination is one concrete flexible departure/return pair derived from
// the trip window and an offset pattern.
type DateCombination struct {
	Departure           time.Time
	Return              time.Time
	DurationDays        int
	DepartureOffsetDays int
	ReturnOffsetDays    int
}

// DirectFlightOffsets is the realistic weekly departure pattern of the direct
// route (roughly 2-3 departures per week).
var DirectFlightOffsets = []int{-7, -4, -3, 0, 3, 4, 7}

type DateOptions struct {
	Offsets           []int
	FlexibilityDays   int
	MinDurationDays   int
	MaxDurationDays   int
	IdealDurationDays int
}

// GenerateCombinations enumerates every offset pair over both legs that keeps
// each offset within the flexibility radius and the trip duration within
// bounds. The result is sorted by distance from the ideal duration, ties in
// generation order, and is deterministic for a given input.
func GenerateCombinations(base TripWindow, opt DateOptions) []DateCombination {
	var out []DateCombination

	for _, depOff := range opt.Offsets {
		if abs(depOff) > opt.FlexibilityDays {
			continue
		}
		departure := base.Departure.AddDate(0, 0, depOff)

		for _, retOff := range opt.Offsets {
			if abs(retOff) > opt.FlexibilityDays {
				continue
			}
			ret := base.Return.AddDate(0, 0, retOff)

			duration := int(ret.Sub(departure).Hours() / 24)
			if duration < opt.MinDurationDays || duration > opt.MaxDurationDays {
				continue
			}

			out = append(out, DateCombination{
				Departure:           departure,
				Return:              ret,
				DurationDays:        duration,
				DepartureOffsetDays: depOff,
				ReturnOffsetDays:    retOff,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return abs(out[i].DurationDays-opt.IdealDurationDays) < abs(out[j].DurationDays-opt.IdealDurationDays)
	})
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

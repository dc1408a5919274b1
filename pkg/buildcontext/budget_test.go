// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package buildcontext

import (
	"fmt"
	"testing"
)

func filesOfCost(n int, cost int) []ClassifiedFile {
	files := make([]ClassifiedFile, n)
	for i := range files {
		files[i] = ClassifiedFile{
			Path: fmt.Sprintf("f%02d.go", i),
			Size: int64(cost - FenceOverhead),
			Tier: TierSource,
		}
	}
	return files
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		size    int64
		fileCap int
		want    int
	}{
		{0, 100, 50},
		{80, 100, 130},
		{100, 100, 150},
		{5000, 100, 150},
		{-3, 100, 50},
	}
	for _, tt := range tests {
		if got := EstimateCost(tt.size, tt.fileCap); got != tt.want {
			t.Errorf("EstimateCost(%d, %d) = %d, want %d", tt.size, tt.fileCap, got, tt.want)
		}
	}
}

// Scenario B: three files of estimated cost 400 against a budget of 1000.
// 1200 <= 1500 so the soft cap admits all three.
func TestGreedySelectorScenarioB(t *testing.T) {
	s := &GreedySelector{FileCap: 15000, MaxFetch: 40}
	got := s.Select(filesOfCost(3, 400), 1000)
	if len(got) != 3 {
		t.Fatalf("Select() returned %d files, want 3", len(got))
	}
}

func TestGreedySelectorStopsAtSoftCap(t *testing.T) {
	s := &GreedySelector{FileCap: 15000, MaxFetch: 40}
	// 400 * 3 = 1200 fits 1500, the fourth would make 1600
	got := s.Select(filesOfCost(5, 400), 1000)
	if len(got) != 3 {
		t.Fatalf("Select() returned %d files, want 3", len(got))
	}
}

func TestGreedySelectorStopsEarlyOnLargeFile(t *testing.T) {
	s := &GreedySelector{FileCap: 15000, MaxFetch: 40}
	files := []ClassifiedFile{
		{Path: "a", Size: 100},
		{Path: "huge", Size: 14000},
		{Path: "b", Size: 1},
	}
	got := s.Select(files, 1000)
	if len(got) != 1 || got[0].Path != "a" {
		t.Errorf("Select() = %v, want only [a]", got)
	}
}

func TestGreedySelectorCountCap(t *testing.T) {
	s := &GreedySelector{FileCap: 15000, MaxFetch: 4}
	got := s.Select(filesOfCost(10, 60), 1_000_000)
	if len(got) != 4 {
		t.Errorf("Select() returned %d files, want 4", len(got))
	}
}

func TestGreedySelectorSoftCapProperty(t *testing.T) {
	for _, budget := range []int{0, 100, 999, 5000, 100000} {
		for _, maxFetch := range []int{1, 7, 40} {
			s := &GreedySelector{FileCap: 2000, MaxFetch: maxFetch}
			var files []ClassifiedFile
			for i := 0; i < 60; i++ {
				files = append(files, ClassifiedFile{Path: fmt.Sprint(i), Size: int64((i * 397) % 3000)})
			}

			got := s.Select(files, budget)
			if len(got) > maxFetch {
				t.Errorf("budget=%d: selected %d > MaxFetch %d", budget, len(got), maxFetch)
			}
			total := 0
			for i, f := range got {
				if f != files[i] {
					t.Fatalf("budget=%d: selection is not a prefix at %d", budget, i)
				}
				total += EstimateCost(f.Size, s.FileCap)
			}
			if float64(total) > float64(budget)*SoftCapFactor {
				t.Errorf("budget=%d: estimated %d exceeds soft cap", budget, total)
			}
		}
	}
}

func TestGreedySelectorNegativeBudget(t *testing.T) {
	s := NewGreedySelector(DefaultBudget())
	if got := s.Select(filesOfCost(3, 100), -10); len(got) != 0 {
		t.Errorf("Select() with negative budget = %v, want none", got)
	}
}

// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package buildcontext

const (
	// FenceOverhead approximates the heading and code fence around a file body.
	FenceOverhead = 50
	// SoftCapFactor is the overshoot allowed on pre-fetch estimates.
	// Sizes are raw bytes and the assembler enforces the hard cap later.
	SoftCapFactor = 1.5
)

// Selector picks which ranked files to fetch for a character budget.
type Selector interface {
	Select(files []ClassifiedFile, budget int) []ClassifiedFile
}

// GreedySelector takes the longest prefix of the canonical order that fits.
// A large file early in the order can starve later small ones; that is accepted
// to keep selection linear and deterministic.
type GreedySelector struct {
	FileCap  int
	MaxFetch int
}

// NewGreedySelector creates a selector using the budget's per-file and count caps.
func NewGreedySelector(b Budget) *GreedySelector {
	return &GreedySelector{FileCap: b.FileCap, MaxFetch: b.MaxFetch}
}

// EstimateCost is the expected rendered size of a file section before its body is known.
func EstimateCost(size int64, fileCap int) int {
	if size > int64(fileCap) {
		size = int64(fileCap)
	}
	if size < 0 {
		size = 0
	}
	return int(size) + FenceOverhead
}

// Select returns a prefix of files. It stops at MaxFetch files, or at the first
// file whose estimate would push the running total past budget*SoftCapFactor.
func (s *GreedySelector) Select(files []ClassifiedFile, budget int) []ClassifiedFile {
	softCap := float64(budget) * SoftCapFactor

	var chosen []ClassifiedFile
	estimated := 0
	for _, f := range files {
		if len(chosen) >= s.MaxFetch {
			break
		}
		cost := EstimateCost(f.Size, s.FileCap)
		if float64(estimated+cost) > softCap {
			break
		}
		chosen = append(chosen, f)
		estimated += cost
	}
	return chosen
}

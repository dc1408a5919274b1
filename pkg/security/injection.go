// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// You may not use this file except in compliance with the License.

// Package security flags repository content that tries to steer the model.
package security

import (
	"regexp"
	"sort"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
)

// Severity represents the severity level of a detected pattern.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// DefaultThreshold is the score at which a context is reported as suspicious.
const DefaultThreshold = 40

// injectionPattern represents a pattern that may indicate prompt injection.
type injectionPattern struct {
	pattern  *regexp.Regexp
	severity Severity
	category string
}

// Detector scans file bodies for text addressed to a language model rather
// than to a human reader.
type Detector struct {
	patterns  []*injectionPattern
	threshold int
}

// NewDetector creates a detector with the default threshold.
func NewDetector() *Detector {
	d := &Detector{threshold: DefaultThreshold}
	d.initPatterns()
	return d
}

// WithThreshold returns a copy of d reporting at score >= threshold.
func (d *Detector) WithThreshold(threshold int) *Detector {
	c := *d
	c.threshold = threshold
	return &c
}

func (d *Detector) initPatterns() {
	patterns := []struct {
		pattern  string
		severity Severity
		category string
	}{
		// Direct override attempts
		{`(?i)ignore\s+(all\s+)?(previous|above|prior|the)\s+(instructions?|prompts?|commands?)`, SeverityCritical, "override"},
		{`(?i)disregard\s+(all\s+)?(previous|above|prior|the)\s+(instructions?|prompts?|commands?)`, SeverityCritical, "override"},
		{`(?i)forget\s+(all\s+)?(previous|above|prior|the)\s+(instructions?|prompts?|commands?)`, SeverityCritical, "override"},

		// Role confusion
		{`(?i)you\s+are\s+now\s+(a\s+)?new\s+(AI|assistant|persona|chatbot|model)`, SeverityCritical, "role_confusion"},
		{`(?i)from\s+now\s+on\s+you\s+are`, SeverityHigh, "role_confusion"},

		// Addressed to whoever summarizes the repository
		{`(?i)(AI|LLM|language\s+model|assistant)s?\s+(summariz|read|review|analyz)\w*\s+this\s+(repo|repository|project|file)`, SeverityHigh, "targeting"},
		{`(?i)when\s+summariz\w+\s+this\s+(repo|repository|project)`, SeverityHigh, "targeting"},

		// System prompt extraction
		{`(?i)(show|print|reveal)\s+(me\s+)?(your|the)\s+(instructions?|system\s+prompt|initial\s+prompt)`, SeverityHigh, "extraction"},
		{`(?i)repeat\s+(everything|all\s+text)\s+(above|before)`, SeverityHigh, "extraction"},

		// Jailbreak attempts
		{`(?i)(jailbreak|jail\s*break)\s*(mode|technique|method|protocol)`, SeverityHigh, "jailbreak"},
		{`(?i)(unrestricted|uncensored|filterless)\s+mode`, SeverityMedium, "jailbreak"},
		{`(?i)\bDAN\s+(mode|protocol)`, SeverityMedium, "jailbreak"},

		// Output format manipulation
		{`(?i)respond\s+(only|just)\s+with\s+"`, SeverityMedium, "format_manipulation"},
		{`(?i)(your\s+)?(response|summary|output)\s+(must|should)\s+(say|state|begin\s+with|start\s+with)`, SeverityMedium, "format_manipulation"},
	}

	d.patterns = make([]*injectionPattern, 0, len(patterns))
	for _, p := range patterns {
		d.patterns = append(d.patterns, &injectionPattern{
			pattern:  regexp.MustCompile(p.pattern),
			severity: p.severity,
			category: p.category,
		})
	}
}

// Finding is a single pattern match inside a file body.
type Finding struct {
	Path     string
	Category string
	Severity Severity
	Offset   int // byte offset of the match in the file section
	Excerpt  string
}

// Report is the result of scanning a document.
type Report struct {
	Findings []Finding
	Score    int // 0-100, higher = more suspicious

	// Suspicious is set when Score reaches the detector threshold.
	Suspicious bool
}

// Paths returns the distinct files with findings, sorted.
func (r *Report) Paths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Findings {
		if !seen[f.Path] {
			seen[f.Path] = true
			out = append(out, f.Path)
		}
	}
	sort.Strings(out)
	return out
}

// ScanText scans one file body.
func (d *Detector) ScanText(path, text string) []Finding {
	var findings []Finding
	for _, pat := range d.patterns {
		for _, m := range pat.pattern.FindAllStringIndex(text, -1) {
			findings = append(findings, Finding{
				Path:     path,
				Category: pat.category,
				Severity: pat.severity,
				Offset:   m[0],
				Excerpt:  excerpt(text[m[0]:m[1]]),
			})
		}
	}
	return findings
}

// ScanDocument scans the file sections of doc. Tree, description and
// language sections are not scanned.
func (d *Detector) ScanDocument(doc *buildcontext.Document) *Report {
	report := &Report{}
	if doc == nil {
		return report
	}

	for _, s := range doc.Sections {
		if s.Kind != buildcontext.SectionFile {
			continue
		}
		report.Findings = append(report.Findings, d.ScanText(s.Path, s.Text)...)
	}

	report.Score = score(report.Findings)
	report.Suspicious = len(report.Findings) > 0 && report.Score >= d.threshold
	return report
}

// score calculates a suspicion score from findings.
func score(findings []Finding) int {
	total := 0
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			total += 40
		case SeverityHigh:
			total += 25
		case SeverityMedium:
			total += 10
		case SeverityLow:
			total += 3
		}
	}

	if total > 100 {
		total = 100
	}
	return total
}

const maxExcerpt = 80

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= maxExcerpt {
		return s
	}
	return string(r[:maxExcerpt]) + "..."
}

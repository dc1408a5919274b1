// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package buildcontext

import (
	"strings"
	"unicode/utf8"
)

const (
	// TruncationMargin is the minimum room reserved for the closing fence and
	// notice when the section crossing the budget is cut.
	TruncationMargin = 200

	// FileTruncatedNotice follows a body cut to FileCap.
	FileTruncatedNotice = "\n\n... [truncated]"
	// BudgetTruncatedNotice follows a body cut to the remaining budget.
	BudgetTruncatedNotice = "\n... [truncated]"
)

// SectionKind identifies a document section.
type SectionKind int

const (
	SectionTree SectionKind = iota
	SectionDescription
	SectionLanguage
	SectionFile
)

// Section is one heading-led block of the document.
type Section struct {
	Kind SectionKind
	// Path is set for SectionFile.
	Path string
	Text string
}

// Document is the assembled context. Used counts characters (code points)
// across all sections and only ever grows.
type Document struct {
	Sections []Section
	Used     int
	Budget   int
	// Truncated is set when any body was cut.
	Truncated bool
	// Exhausted is set when the budget stopped assembly.
	Exhausted bool
}

// NewDocument creates an empty document with a character budget.
func NewDocument(ctxBudget int) *Document {
	return &Document{Budget: ctxBudget}
}

// Remaining is the character room left.
func (d *Document) Remaining() int {
	return d.Budget - d.Used
}

// String joins the sections with a blank line between them.
func (d *Document) String() string {
	texts := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		texts[i] = s.Text
	}
	return strings.Join(texts, "\n")
}

// Files lists the paths of file sections in document order.
func (d *Document) Files() []string {
	var paths []string
	for _, s := range d.Sections {
		if s.Kind == SectionFile {
			paths = append(paths, s.Path)
		}
	}
	return paths
}

func (d *Document) push(s Section) {
	d.Sections = append(d.Sections, s)
	d.Used += utf8.RuneCountInString(s.Text)
}

// full reports whether no further section may be appended.
func (d *Document) full() bool {
	if d.Used >= d.Budget {
		d.Exhausted = true
		return true
	}
	return false
}

// AddHeader appends the directory tree and the non-empty metadata blocks.
func (d *Document) AddHeader(tree, description, language string) {
	if d.full() {
		return
	}
	d.push(Section{Kind: SectionTree, Text: "## Directory Tree\n\n```\n" + tree + "\n```\n"})

	if description != "" && !d.full() {
		d.push(Section{Kind: SectionDescription, Text: "## Repository Description\n\n" + description + "\n"})
	}
	if language != "" && !d.full() {
		d.push(Section{Kind: SectionLanguage, Text: "## Primary Language\n\n" + language + "\n"})
	}
}

// AddFiles appends file sections in the given order. Missing or empty bodies
// are skipped. The first section that does not fit is cut to the remaining
// room and ends assembly.
func (d *Document) AddFiles(files []ClassifiedFile, bodies map[string]string, fileCap int) {
	for _, f := range files {
		if d.full() {
			return
		}
		body := bodies[f.Path]
		if body == "" {
			continue
		}
		if utf8.RuneCountInString(body) > fileCap {
			body = truncateRunes(body, fileCap) + FileTruncatedNotice
			d.Truncated = true
		}

		text := fileSection(f.Path, body, "")
		room := d.Remaining()
		if utf8.RuneCountInString(text) > room {
			wrapper := utf8.RuneCountInString(fileSection(f.Path, "", BudgetTruncatedNotice))
			keep := room - max(TruncationMargin, wrapper)
			if keep < 0 {
				keep = 0
			}
			d.push(Section{
				Kind: SectionFile,
				Path: f.Path,
				Text: fileSection(f.Path, truncateRunes(body, keep), BudgetTruncatedNotice),
			})
			d.Truncated = true
			d.Exhausted = true
			return
		}
		d.push(Section{Kind: SectionFile, Path: f.Path, Text: text})
	}
}

// AssembleInput carries everything Assemble needs.
type AssembleInput struct {
	Tree        string
	Description string
	Language    string
	// Files are in canonical order.
	Files  []ClassifiedFile
	Bodies map[string]string
}

// Assemble builds the whole document in one call.
func Assemble(in AssembleInput, b Budget) *Document {
	doc := NewDocument(b.CtxBudget)
	doc.AddHeader(in.Tree, in.Description, in.Language)
	doc.AddFiles(in.Files, in.Bodies, b.FileCap)
	return doc
}

func fileSection(path, body, notice string) string {
	return "## File: " + path + "\n\n```\n" + body + notice + "\n```\n"
}

// truncateRunes keeps the first n code points of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

package engine

import (
	"strings"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// AttachmentAnalysis aggregates per-category classification of attachment
// filenames. A nil analysis means the email had no attachments; an email
// with attachments always gets a non-nil analysis, even when nothing in it
// is dangerous.
type AttachmentAnalysis struct {
	HasHTML         bool
	HasArchive      bool
	HasDiskImage    bool
	HasExecutable   bool
	HasMacroCapable bool

	HTMLFiles      []string
	DangerousFiles []string
	AllFiles       []string
}

// HasDangerousType reports whether any category matched.
func (a *AttachmentAnalysis) HasDangerousType() bool {
	return a.HasHTML || a.HasArchive || a.HasDiskImage || a.HasExecutable || a.HasMacroCapable
}

// HasDangerousNonHTML reports archive/disk-image/executable/macro-capable
// matches; HTML attachments are handled by their own pattern.
func (a *AttachmentAnalysis) HasDangerousNonHTML() bool {
	return a.HasArchive || a.HasDiskImage || a.HasExecutable || a.HasMacroCapable
}

// NonHTMLDangerousFiles filters the dangerous file list down to non-HTML
// entries, for Pattern D evidence.
func (a *AttachmentAnalysis) NonHTMLDangerousFiles(exts ExtensionTable) []string {
	var files []string
	for _, f := range a.DangerousFiles {
		if !hasExtensionIn(f, exts.HTML) {
			files = append(files, f)
		}
	}
	return files
}

// analyzeAttachments classifies each filename's final extension into the
// configured categories and detects double-extension evasion: a filename
// with three or more dot-separated segments whose final segment is an
// executable extension is flagged executable regardless of the nominal type
// (e.g. invoice.pdf.exe).
func (e *Extractor) analyzeAttachments(attachments []domain.Attachment) *AttachmentAnalysis {
	if len(attachments) == 0 {
		return nil
	}

	exts := e.cfg.Tables.Extensions
	analysis := &AttachmentAnalysis{}

	for _, att := range attachments {
		name := strings.ToLower(att.Filename)
		analysis.AllFiles = append(analysis.AllFiles, name)

		if hasExtensionIn(name, exts.HTML) {
			analysis.HasHTML = true
			analysis.HTMLFiles = append(analysis.HTMLFiles, name)
			analysis.DangerousFiles = append(analysis.DangerousFiles, name)
		}
		if hasExtensionIn(name, exts.Archive) {
			analysis.HasArchive = true
			analysis.DangerousFiles = append(analysis.DangerousFiles, name)
		}
		if hasExtensionIn(name, exts.DiskImage) {
			analysis.HasDiskImage = true
			analysis.DangerousFiles = append(analysis.DangerousFiles, name)
		}
		if hasExtensionIn(name, exts.Executable) {
			analysis.HasExecutable = true
			analysis.DangerousFiles = append(analysis.DangerousFiles, name)
		}
		if hasExtensionIn(name, exts.MacroCapable) {
			analysis.HasMacroCapable = true
			analysis.DangerousFiles = append(analysis.DangerousFiles, name)
		}

		// Double-extension evasion check.
		if strings.Count(name, ".") >= 2 && hasExtensionIn(name, exts.Executable) {
			analysis.HasExecutable = true
			if !containsString(analysis.DangerousFiles, name) {
				analysis.DangerousFiles = append(analysis.DangerousFiles, name)
			}
		}
	}
	return analysis
}

// hasExtensionIn checks the filename's final extension against a list.
func hasExtensionIn(name string, extensions []string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	ext := name[idx:]
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

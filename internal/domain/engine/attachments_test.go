package engine

import (
	"testing"

	"github.com/phishguard/pattern-engine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeAttachments_Categories(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())

	tests := []struct {
		name      string
		filenames []string
		check     func(t *testing.T, a *AttachmentAnalysis)
	}{
		{
			name:      "Archive",
			filenames: []string{"invoice.zip"},
			check: func(t *testing.T, a *AttachmentAnalysis) {
				assert.True(t, a.HasArchive)
				assert.True(t, a.HasDangerousNonHTML())
				assert.False(t, a.HasHTML)
			},
		},
		{
			name:      "Disk image",
			filenames: []string{"setup.iso"},
			check: func(t *testing.T, a *AttachmentAnalysis) {
				assert.True(t, a.HasDiskImage)
			},
		},
		{
			name:      "Macro-capable document",
			filenames: []string{"report.xlsm"},
			check: func(t *testing.T, a *AttachmentAnalysis) {
				assert.True(t, a.HasMacroCapable)
			},
		},
		{
			name:      "HTML attachment",
			filenames: []string{"secure-message.html"},
			check: func(t *testing.T, a *AttachmentAnalysis) {
				assert.True(t, a.HasHTML)
				assert.False(t, a.HasDangerousNonHTML())
				assert.Equal(t, []string{"secure-message.html"}, a.HTMLFiles)
			},
		},
		{
			name:      "Benign document",
			filenames: []string{"contract.pdf"},
			check: func(t *testing.T, a *AttachmentAnalysis) {
				assert.False(t, a.HasDangerousType())
				assert.Equal(t, []string{"contract.pdf"}, a.AllFiles)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attachments := make([]domain.Attachment, 0, len(tt.filenames))
			for _, f := range tt.filenames {
				attachments = append(attachments, domain.Attachment{Filename: f})
			}
			analysis := extractor.analyzeAttachments(attachments)
			assert.NotNil(t, analysis, "emails with attachments always get an analysis")
			tt.check(t, analysis)
		})
	}
}

func TestAnalyzeAttachments_DoubleExtension(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())

	analysis := extractor.analyzeAttachments([]domain.Attachment{
		{Filename: "statement.pdf.exe"},
	})

	assert.NotNil(t, analysis)
	assert.True(t, analysis.HasExecutable, "declared document type must not mask the executable extension")
	assert.Equal(t, []string{"statement.pdf.exe"}, analysis.DangerousFiles, "no duplicate entries")
}

func TestAnalyzeAttachments_NoAttachments(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	assert.Nil(t, extractor.analyzeAttachments(nil), "no attachments means no analysis, not an empty one")
	assert.Nil(t, extractor.analyzeAttachments([]domain.Attachment{}))
}

func TestAttachmentAnalysis_NonHTMLDangerousFiles(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())

	analysis := extractor.analyzeAttachments([]domain.Attachment{
		{Filename: "portal.html"},
		{Filename: "payload.zip"},
	})

	files := analysis.NonHTMLDangerousFiles(DefaultTables().Extensions)
	assert.Equal(t, []string{"payload.zip"}, files)
}

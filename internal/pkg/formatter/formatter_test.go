package formatter

import (
	"testing"

	"github.com/futig/churn-console/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		format        entity.ResultFormat
		wantType      string
		wantExtension string
	}{
		{entity.FormatMarkdown, "text/markdown; charset=utf-8", ".md"},
		{entity.FormatPDF, "application/pdf", ".pdf"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := factory.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, f.ContentType())
			assert.Equal(t, tt.wantExtension, f.FileExtension())
		})
	}
}

func TestFactoryCreate_Unsupported(t *testing.T) {
	factory := NewFactory()

	_, err := factory.Create(entity.ResultFormat("docx"))
	assert.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	f := NewMarkdownFormatter()

	data, err := f.Format("## Answer\n\nPricing drives churn.")
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# Churn Analysis Report")
	assert.Contains(t, out, "Pricing drives churn.")
}

func TestPDFFormatter(t *testing.T) {
	f := NewPDFFormatter()

	data, err := f.Format("## Answer\n\nPricing drives churn.")
	require.NoError(t, err)

	// %PDF magic bytes
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

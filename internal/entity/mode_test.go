package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"plain-rag", "single-agent", "multi-agent"} {
		m, err := ParseMode(valid)
		require.NoError(t, err)
		assert.Equal(t, Mode(valid), m)
	}

	_, err := ParseMode("agentic")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseRetrieverKind(t *testing.T) {
	for _, k := range RetrieverKinds {
		parsed, err := ParseRetrieverKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseRetrieverKind("hybrid")
	assert.ErrorIs(t, err, ErrUnknownRetriever)
}

func TestParseResultFormat(t *testing.T) {
	md, err := ParseResultFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, md)

	pdf, err := ParseResultFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, pdf)

	_, err = ParseResultFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean name", "report.pdf", "report.pdf"},
		{"spaces", "my report.pdf", "my_report.pdf"},
		{"parentheses", "scan (1).pdf", "scan__1_.pdf"},
		{"unicode", "báo cáo.pdf", "b_o_c_o.pdf"},
		{"allowed punctuation", "a-b_c.d", "a-b_c.d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestBaseNameWithoutExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report"},
		{"/tmp/uploads/report.pdf", "report"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseNameWithoutExt(tt.in))
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("a.pdf"))
	assert.True(t, IsPDF("A.PDF"))
	assert.False(t, IsPDF("a.txt"))
	assert.False(t, IsPDF("pdf"))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenter(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{text: "ab", width: 6, want: "  ab  "},
		{text: "ab", width: 5, want: "  ab "},
		{text: "abc", width: 6, want: " abc  "},
		{text: "abc", width: 7, want: "  abc  "},
		{text: "abc", width: 3, want: "abc"},
		{text: "abcdef", width: 3, want: "abcdef"},
		{text: "", width: 4, want: "    "},
		{text: "é", width: 3, want: " é "},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Center(tt.text, tt.width))
		})
	}
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, 5, Midpoint(10))
	assert.Equal(t, 4, Midpoint(9))
	assert.Equal(t, 1, Midpoint(2))
}

func TestIsChapterHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Chapter One", true},
		{"  CHAPTER 12  \n", true},
		{"chapter", true},
		{"Chapters are long.", true},
		{"The chapter ends.", false},
		{"Chap. 3", false},
		{"", false},
		{"   ", false},
		{"IV", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsChapterHeader(tt.line))
		})
	}
}

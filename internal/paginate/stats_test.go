// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/inkpager/pkg/types"
)

func TestStats(t *testing.T) {
	pages := Paginate([]string{
		"Chapter One", "A Long-Expected Journey", "",
		"When the miller came up the lane with his cart, the whole village stopped to watch him unload the new grindstone.",
		"", strings.Repeat("y", 50),
		"Chapter Two",
	})

	st := Stats(pages, types.DefaultLayout())

	assert.Equal(t, 3, st.Pages)
	assert.Equal(t, 2, st.ChapterPages)
	assert.Equal(t, 1, st.ContentPages)
	assert.Equal(t, []string{"Chapter One", "Chapter Two"}, st.Chapters)
	assert.Equal(t, 1, st.OverlongLines)
	assert.Equal(t, 10+6+10, st.Lines)
}

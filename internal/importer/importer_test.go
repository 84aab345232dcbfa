package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONFlatArray(t *testing.T) {
	data := []byte(`[
		{"url": "https://a.example", "title": "A", "tags": ["x", "y"], "isFavorite": true},
		{"href": "https://b.example", "name": "B", "description": "second"}
	]`)

	got, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "https://a.example", got[0].URL)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, []string{"x", "y"}, got[0].Tags)
	assert.True(t, got[0].IsFavorite)

	assert.Equal(t, "https://b.example", got[1].URL)
	assert.Equal(t, "B", got[1].Title, "name is an accepted title alias")
	assert.Equal(t, "second", got[1].Description)
}

func TestParseJSONWrapper(t *testing.T) {
	data := []byte(`{"bookmarks": [{"url": "https://a.example", "title": "A"}]}`)

	got, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://a.example", got[0].URL)
}

func TestParseJSONFirefoxTree(t *testing.T) {
	data := []byte(`{
		"title": "root",
		"children": [
			{"title": "toolbar", "children": [
				{"title": "Deep", "uri": "https://deep.example"},
				{"title": "folder", "children": [
					{"title": "Deeper", "uri": "https://deeper.example"}
				]}
			]},
			{"title": "Top", "uri": "https://top.example"}
		]
	}`)

	got, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "https://deep.example", got[0].URL)
	assert.Equal(t, "https://deeper.example", got[1].URL)
	assert.Equal(t, "https://top.example", got[2].URL)
}

func TestParseJSONTagString(t *testing.T) {
	data := []byte(`[{"url": "https://a.example", "tags": "go, redis web"}]`)

	got, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "redis", "web"}, got[0].Tags)
}

func TestParseJSONRejectsGarbage(t *testing.T) {
	_, err := ParseJSON([]byte(`{"unrelated": 42}`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`not json at all`))
	assert.Error(t, err)
}

func TestParseHTML(t *testing.T) {
	data := []byte(`<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
	<DT><A HREF="https://a.example" ADD_DATE="1700000000" TAGS="go,web">First &amp; Best</A>
	<DT><A HREF="https://b.example">Second <b>bold</b></A>
	<DT><A HREF="">empty, skipped</A>
</DL>`)

	got := ParseHTML(data)
	require.Len(t, got, 2)

	assert.Equal(t, "https://a.example", got[0].URL)
	assert.Equal(t, "First & Best", got[0].Title)
	assert.Equal(t, []string{"go", "web"}, got[0].Tags)

	assert.Equal(t, "Second bold", got[1].Title, "inner markup is stripped")
	assert.Empty(t, got[1].Tags)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
- url: https://a.example
  title: A
  tags: [go, redis]
  favorite: true
- href: https://b.example
  description: via href
- title: no url, skipped
`)

	got, err := ParseYAML(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://a.example", got[0].URL)
	assert.True(t, got[0].IsFavorite)
	assert.Equal(t, "https://b.example", got[1].URL)
}

func TestParseSniffsFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"json array", `[{"url": "https://a.example"}]`, 1},
		{"html", `<DL><DT><A HREF="https://a.example">A</A></DL>`, 1},
		{"yaml", "- url: https://a.example\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), "")
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	_, err := Parse([]byte("x"), Format("xml"))
	assert.Error(t, err)
}

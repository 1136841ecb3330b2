package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePreviewURL(t *testing.T) {
	// All spellings of the same channel must yield the same preview URL
	inputs := []string{
		"t.me/foo",
		"https://t.me/foo",
		"https://t.me/s/foo",
		"  t.me/foo  ",
		"http://t.me/foo",
	}
	for _, input := range inputs {
		url, err := NormalizePreviewURL(input)
		assert.NoError(t, err, input)
		assert.Equal(t, "https://t.me/s/foo", url, input)
	}
}

func TestNormalizePreviewURLBareHandle(t *testing.T) {
	url, err := NormalizePreviewURL("mychannel")
	assert.NoError(t, err)
	assert.Equal(t, "https://t.me/s/mychannel", url)
}

func TestNormalizePreviewURLEmpty(t *testing.T) {
	_, err := NormalizePreviewURL("")
	assert.Error(t, err)

	_, err = NormalizePreviewURL("   ")
	assert.Error(t, err)
}

func TestSourceHandle(t *testing.T) {
	assert.Equal(t, "mychannel", SourceHandle("https://t.me/MyChannel"))
	assert.Equal(t, "mychannel", SourceHandle("https://t.me/s/mychannel"))
	assert.Equal(t, "mychannel", SourceHandle("t.me/mychannel"))
	assert.Equal(t, "mychannel", SourceHandle("MyChannel"))
	assert.Equal(t, "", SourceHandle(""))
	assert.Equal(t, "", SourceHandle("https://example.com/page"))
}

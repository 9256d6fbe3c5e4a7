package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckrev/deckrev/internal/api"
)

type fakeFetcher struct {
	calls int
	err   error
}

func (f *fakeFetcher) GetImageFile(_ context.Context, filename, _ string, _ int64) (api.Presigned, error) {
	f.calls++
	if f.err != nil {
		return api.Presigned{}, f.err
	}
	return api.Presigned{URL: "https://cdn.example/" + filename, ExpiresIn: 300}, nil
}

func TestResolve(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := NewResolver(fetcher)
	r.Register([]Element{{ID: "note/101/img-0", Filename: "cat.jpg", ContextType: "note", ContextID: 101}})

	url, err := r.Resolve(context.Background(), "note/101/img-0")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/cat.jpg", url)

	el, ok := r.Element("note/101/img-0")
	require.True(t, ok)
	assert.Equal(t, StateResolved, el.State)
	assert.Equal(t, 300, el.ExpiresIn)

	// A second resolve returns the memoized URL without a new request.
	url, err = r.Resolve(context.Background(), "note/101/img-0")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/cat.jpg", url)
	assert.Equal(t, 1, fetcher.calls)
}

func TestResolveUnknownElement(t *testing.T) {
	r := NewResolver(&fakeFetcher{})
	_, err := r.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownElement)
}

func TestFailedElementIsNotRetriableUntilReRegistered(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("404")}
	r := NewResolver(fetcher)
	el := Element{ID: "note/1/img-0", Filename: "gone.jpg", ContextType: "note", ContextID: 1}
	r.Register([]Element{el})

	_, err := r.Resolve(context.Background(), el.ID)
	require.Error(t, err)

	_, err = r.Resolve(context.Background(), el.ID)
	assert.ErrorIs(t, err, ErrNotRetriable)
	assert.Equal(t, 1, fetcher.calls)

	// Re-registering (a re-render) resets the element and allows a retry.
	fetcher.err = nil
	r.Register([]Element{el})
	url, err := r.Resolve(context.Background(), el.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/gone.jpg", url)
}

func TestExtractElements(t *testing.T) {
	html := `before <img src="one.jpg"> middle <IMG SRC='two.png'> ` +
		`<img src="https://external.example/pic.jpg"> <img src="data:image/png;base64,xx">`

	els := ExtractElements(html, "note", 101)
	require.Len(t, els, 2)
	assert.Equal(t, "one.jpg", els[0].Filename)
	assert.Equal(t, "two.png", els[1].Filename)
	assert.Equal(t, "note/101/img-0", els[0].ID)
	assert.Equal(t, int64(101), els[0].ContextID)
}

func TestIsLocalReference(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"cat.jpg", true},
		{"sub/cat.jpg", true},
		{"http://x/cat.jpg", false},
		{"HTTPS://x/cat.jpg", false},
		{"//cdn/cat.jpg", false},
		{"data:image/png;base64,xx", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocalReference(tt.src))
		})
	}
}

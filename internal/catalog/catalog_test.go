package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-helloworld/internal/stremio"
)

func TestGetManifest(t *testing.T) {
	s := Default()

	m := s.GetManifest()
	require.Equal(t, manifest, m)
	assert.Equal(t, []string{"movie", "series"}, m.Types)
	// Always identical
	assert.Equal(t, m, s.GetManifest())
}

func TestUnsupportedType(t *testing.T) {
	s := Default()

	for _, typ := range []string{"", "tv", "channel", "Movie", "movies"} {
		_, err := s.GetCatalog(typ, "Hello, Go")
		assert.True(t, errors.Is(err, ErrUnsupportedType), "catalog %q", typ)

		meta, err := s.GetMeta(typ, "tt0032138")
		assert.True(t, errors.Is(err, ErrUnsupportedType), "meta %q", typ)
		assert.Nil(t, meta)

		st, err := s.GetStreams(typ, "tt0032138")
		assert.True(t, errors.Is(err, ErrUnsupportedType), "stream %q", typ)
		assert.Nil(t, st)
	}
}

func TestGetCatalog(t *testing.T) {
	s := Default()

	for typ, list := range items {
		// The catalog id doesn't select anything
		for _, catalogId := range []string{"Hello, Go", "anything", ""} {
			metas, err := s.GetCatalog(typ, catalogId)
			require.NoError(t, err)
			require.Len(t, metas, len(list))

			for i, meta := range metas {
				assert.Equal(t, list[i].Id, meta.Id)
				assert.Equal(t, typ, meta.Type)
				assert.Equal(t, list[i].Name, meta.Name)
				assert.Equal(t, list[i].Genres, meta.Genres)
				assert.Equal(t, "https://images.metahub.space/poster/medium/"+list[i].Id+"/img", meta.Poster)
			}
		}
	}
}

func TestGetCatalog_EmptyType(t *testing.T) {
	m := manifest
	m.Types = []string{"movie", "series", "channel"}
	s := New(m, items, streams)

	metas, err := s.GetCatalog("channel", "Hello, Go")
	require.NoError(t, err)
	require.NotNil(t, metas)
	assert.Empty(t, metas)
}

func TestGetMeta_Movie(t *testing.T) {
	s := Default()

	meta, err := s.GetMeta("movie", "tt0032138")
	require.NoError(t, err)
	require.NotNil(t, meta)

	exp := &stremio.MetaItem{
		Id:     "tt0032138",
		Type:   "movie",
		Name:   "The Wizard of Oz",
		Genres: []string{"Adventure", "Family", "Fantasy", "Musical"},
		Poster: "https://images.metahub.space/poster/medium/tt0032138/img",
	}
	if diff := cmp.Diff(exp, meta); diff != "" {
		t.Errorf("GetMeta() mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, meta.Videos)
}

func TestGetMeta_Series(t *testing.T) {
	s := Default()

	meta, err := s.GetMeta("series", "hpytt0147753")
	require.NoError(t, err)
	require.NotNil(t, meta)

	require.Len(t, meta.Videos, 2)
	assert.Equal(t, "hpytt0147753:1:1", meta.Videos[0].Id)
	assert.Equal(t, "Daniel Boone", meta.Videos[1].Title)
	require.NotNil(t, meta.ImdbRating)
	assert.Equal(t, 6.9, *meta.ImdbRating)
	require.NotNil(t, meta.ReleaseInfo)
	assert.Equal(t, "1955-1956", *meta.ReleaseInfo)
	assert.NotNil(t, meta.Logo)
	assert.NotNil(t, meta.Description)
	// Absent optional fields stay absent
	assert.Nil(t, meta.Background)
	assert.Nil(t, meta.Director)
	assert.Nil(t, meta.InTheaters)
}

func TestGetMeta_NotFound(t *testing.T) {
	s := Default()

	meta, err := s.GetMeta("movie", "doesnotexist")
	require.NoError(t, err)
	assert.Nil(t, meta)

	// Ids are looked up within the requested type only
	meta, err = s.GetMeta("series", "tt0032138")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestGetMeta_DoesNotShareTables(t *testing.T) {
	s := Default()

	meta, err := s.GetMeta("series", "hpytt0147753")
	require.NoError(t, err)
	meta.Genres[0] = "Western"
	meta.Videos[0].Title = "changed"

	again, err := s.GetMeta("series", "hpytt0147753")
	require.NoError(t, err)
	assert.Equal(t, "Sci-Fi", again.Genres[0])
	assert.Equal(t, "Christopher Columbus", again.Videos[0].Title)
}

func TestGetMeta_DoesNotShareDetails(t *testing.T) {
	s := Default()

	meta, err := s.GetMeta("series", "hpytt0147753")
	require.NoError(t, err)
	require.NotNil(t, meta.ReleaseInfo)
	require.NotNil(t, meta.ImdbRating)
	*meta.ReleaseInfo = "changed"
	*meta.ImdbRating = 1
	*meta.Logo = "changed"

	again, err := s.GetMeta("series", "hpytt0147753")
	require.NoError(t, err)
	assert.Equal(t, "1955-1956", *again.ReleaseInfo)
	assert.Equal(t, 6.9, *again.ImdbRating)
	assert.NotEqual(t, "changed", *again.Logo)
}

func TestGetManifest_DoesNotShareTables(t *testing.T) {
	s := Default()

	m := s.GetManifest()
	m.Types[0] = "tv"
	m.Catalogs[0].Type = "tv"
	m.Resources[1].Types[0] = "tv"
	m.Resources[2].IdPrefixes[0] = "xx"

	again := s.GetManifest()
	assert.Equal(t, []string{"movie", "series"}, again.Types)
	assert.Equal(t, "movie", again.Catalogs[0].Type)
	assert.Equal(t, []string{"series"}, again.Resources[1].Types)
	assert.Equal(t, []string{"tt", "hpy"}, again.Resources[2].IdPrefixes)

	_, err := s.GetCatalog("movie", "Hello, Go")
	assert.NoError(t, err)
}

func TestGetStreams(t *testing.T) {
	s := Default()

	tests := []struct {
		typ string
		id  string
		exp []stremio.Stream
	}{
		{"movie", "tt1254207", []stremio.Stream{stremio.URLStream("HTTP URL", "http://clips.vorwaerts-gmbh.de/big_buck_bunny.mp4")}},
		{"movie", "tt0032138", []stremio.Stream{stremio.TorrentFileStream("Torrent", "24c8802e2624e17d46cd555f364debd949f2c81e", 0)}},
		{"movie", "tt0051744", []stremio.Stream{stremio.TorrentStream("Torrent", "9f86563ce2ed86bbfedd5d3e9f4e55aedd660960")}},
		{"series", "hpytt0147753:1:2", []stremio.Stream{stremio.YouTubeStream("YouTube", "ZzdBKcVzx9Y")}},
		{"series", "unknown:1:1", []stremio.Stream{}},
		{"series", "hpytt0147753", []stremio.Stream{}},
		{"movie", "hpytt0147753:1:1", []stremio.Stream{}},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.id, func(t *testing.T) {
			st, err := s.GetStreams(tt.typ, tt.id)
			require.NoError(t, err)
			require.NotNil(t, st)
			if diff := cmp.Diff(tt.exp, st, cmp.AllowUnexported(stremio.Stream{})); diff != "" {
				t.Errorf("GetStreams() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPosterURL(t *testing.T) {
	assert.Equal(t, "https://images.metahub.space/poster/medium/tt0137523/img", PosterURL("tt0137523"))
	// Not validated
	assert.Equal(t, "https://images.metahub.space/poster/medium/nope/img", PosterURL("nope"))
}

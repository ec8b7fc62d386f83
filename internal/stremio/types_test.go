package stremio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestResourceItem_Shapes(t *testing.T) {
	resources := []ResourceItem{
		{Name: "catalog"},
		{Name: "meta", Types: []string{"series"}, IdPrefixes: []string{"hpy"}},
	}

	data, err := json.Marshal(resources)
	require.NoError(t, err)
	assert.JSONEq(t, `["catalog",{"name":"meta","types":["series"],"idPrefixes":["hpy"]}]`, string(data))

	var decoded []ResourceItem
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, resources, decoded)
}

func TestMetaItem_OmitsAbsentDetails(t *testing.T) {
	rating := 6.9
	meta := MetaItem{
		Id:     "hpytt0147753",
		Type:   "series",
		Name:   "Captain Z-Ro",
		Genres: []string{"Sci-Fi"},
		Poster: "https://images.metahub.space/poster/medium/hpytt0147753/img",
		MetaDetails: MetaDetails{
			ImdbRating: &rating,
		},
	}

	data, err := json.Marshal(meta)
	require.NoError(t, err)

	assert.Len(t, gjson.ParseBytes(data).Map(), 6)
	assert.Equal(t, 6.9, gjson.GetBytes(data, "imdbRating").Float())
	assert.False(t, gjson.GetBytes(data, "videos").Exists())
	assert.False(t, gjson.GetBytes(data, "description").Exists())
}

func TestMetaResponse_Null(t *testing.T) {
	data, err := json.Marshal(MetaResponse{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta":null}`, string(data))
}

func TestManifest_HasType(t *testing.T) {
	m := Manifest{Types: []string{"movie", "series"}}
	assert.True(t, m.HasType("movie"))
	assert.True(t, m.HasType("series"))
	assert.False(t, m.HasType("channel"))
	assert.False(t, m.HasType(""))
}

func TestMetaDetails_Clone(t *testing.T) {
	rating := 7.5
	peered := true
	d := MetaDetails{
		Description: new(string),
		ImdbRating:  &rating,
		IsPeered:    &peered,
		Videos:      []Video{{Season: 1, Episode: 1, Id: "x:1:1"}},
		Cast:        []string{"A"},
	}

	c := d.Clone()
	require.Equal(t, d, c)

	*c.Description = "changed"
	*c.ImdbRating = 1
	*c.IsPeered = false
	c.Videos[0].Id = "y:1:1"
	c.Cast[0] = "B"

	assert.Equal(t, "", *d.Description)
	assert.Equal(t, 7.5, *d.ImdbRating)
	assert.True(t, *d.IsPeered)
	assert.Equal(t, "x:1:1", d.Videos[0].Id)
	assert.Equal(t, "A", d.Cast[0])
	assert.Nil(t, c.Logo)
	assert.Nil(t, c.Director)
}

func TestManifest_Clone(t *testing.T) {
	m := Manifest{
		Types:     []string{"movie"},
		Catalogs:  []CatalogDescriptor{{Type: "movie", Id: "top"}},
		Resources: []ResourceItem{{Name: "stream", Types: []string{"movie"}, IdPrefixes: []string{"tt"}}},
	}

	c := m.Clone()
	require.Equal(t, m, c)

	c.Types[0] = "tv"
	c.Catalogs[0].Id = "other"
	c.Resources[0].Types[0] = "tv"
	c.Resources[0].IdPrefixes[0] = "xx"

	assert.Equal(t, "movie", m.Types[0])
	assert.Equal(t, "top", m.Catalogs[0].Id)
	assert.Equal(t, "movie", m.Resources[0].Types[0])
	assert.Equal(t, "tt", m.Resources[0].IdPrefixes[0])
}

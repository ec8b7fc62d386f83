package catalog

import "go-helloworld/internal/stremio"

const Version = "1.0.0"

// Item is a title stored in the catalog.
type Item struct {
	Id     string
	Name   string
	Genres []string

	stremio.MetaDetails
}

func ptr[T any](v T) *T {
	return &v
}

var manifest = stremio.Manifest{
	Id:          "org.stremio.helloworldgo",
	Version:     Version,
	Name:        "Hello World Go Addon",
	Description: "Sample addon made with Go providing a few public domain movies",
	Types:       []string{"movie", "series"},
	Catalogs: []stremio.CatalogDescriptor{
		{Type: "movie", Id: "Hello, Go"},
		{Type: "series", Id: "Hello, Go"},
	},
	Resources: []stremio.ResourceItem{
		{Name: "catalog"},
		// Meta is only requested by clients for series with an id starting with "hpy"
		{Name: "meta", Types: []string{"series"}, IdPrefixes: []string{"hpy"}},
		{Name: "stream", Types: []string{"movie", "series"}, IdPrefixes: []string{"tt", "hpy"}},
	},
}

var items = map[string][]Item{
	"movie": {
		{Id: "tt0032138", Name: "The Wizard of Oz", Genres: []string{"Adventure", "Family", "Fantasy", "Musical"}},
		{Id: "tt0017136", Name: "Metropolis", Genres: []string{"Drama", "Sci-Fi"}},
		{Id: "tt0051744", Name: "House on Haunted Hill", Genres: []string{"Horror", "Mystery"}},
		{Id: "tt1254207", Name: "Big Buck Bunny", Genres: []string{"Animation", "Short", "Comedy"}},
		{Id: "tt0031051", Name: "The Arizona Kid", Genres: []string{"Music", "War", "Western"}},
		{Id: "tt0137523", Name: "Fight Club", Genres: []string{"Drama"}},
	},
	"series": {
		{
			Id:     "tt1748166",
			Name:   "Pioneer One",
			Genres: []string{"Drama"},
			MetaDetails: stremio.MetaDetails{
				Videos: []stremio.Video{
					{Season: 1, Episode: 1, Id: "tt1748166:1:1", Title: "Earthfall", Released: "2010-06-16"},
				},
			},
		},
		{
			Id:     "hpytt0147753",
			Name:   "Captain Z-Ro",
			Genres: []string{"Sci-Fi"},
			MetaDetails: stremio.MetaDetails{
				Description: ptr("From his secret laboratory, Captain Z-Ro and his associates use their time machine, the ZX-99, to learn from the past and plan for the future."),
				ReleaseInfo: ptr("1955-1956"),
				Logo:        ptr("https://fanart.tv/fanart/tv/70358/hdtvlogo/captain-z-ro-530995d5e979d.png"),
				ImdbRating:  ptr(6.9),
				Videos: []stremio.Video{
					{Season: 1, Episode: 1, Id: "hpytt0147753:1:1", Title: "Christopher Columbus", Released: "1955-12-18"},
					{Season: 1, Episode: 2, Id: "hpytt0147753:1:2", Title: "Daniel Boone", Released: "1955-12-25"},
				},
			},
		},
	},
}

var streams = map[string]map[string][]stremio.Stream{
	"movie": {
		"tt0032138": {stremio.TorrentFileStream("Torrent", "24c8802e2624e17d46cd555f364debd949f2c81e", 0)},
		"tt0017136": {stremio.TorrentFileStream("Torrent", "dca926c0328bb54d209d82dc8a2f391617b47d7a", 1)},
		"tt0051744": {stremio.TorrentStream("Torrent", "9f86563ce2ed86bbfedd5d3e9f4e55aedd660960")},
		"tt1254207": {stremio.URLStream("HTTP URL", "http://clips.vorwaerts-gmbh.de/big_buck_bunny.mp4")},
		"tt0031051": {stremio.YouTubeStream("YouTube", "m3BKVSpP80s")},
		"tt0137523": {stremio.ExternalStream("External URL", "https://www.netflix.com/watch/26004747")},
	},
	"series": {
		"tt1748166:1:1":    {stremio.TorrentStream("Torrent", "07a9de9750158471c3302e4e95edb1107f980fa6")},
		"hpytt0147753:1:1": {stremio.YouTubeStream("YouTube", "5EQw5NYlbyE")},
		"hpytt0147753:1:2": {stremio.YouTubeStream("YouTube", "ZzdBKcVzx9Y")},
	},
}

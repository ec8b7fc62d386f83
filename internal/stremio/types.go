package stremio

import (
	"encoding/json"
	"slices"
)

// ResourceItem names a resource the addon serves. When Types and IdPrefixes are
// both empty it is encoded as a bare string, otherwise as a descriptor object.
type ResourceItem struct {
	Name       string   `json:"name"`
	Types      []string `json:"types,omitempty"`
	IdPrefixes []string `json:"idPrefixes,omitempty"`
}

type resourceDescriptor ResourceItem

func (ri ResourceItem) MarshalJSON() ([]byte, error) {
	if len(ri.Types) == 0 && len(ri.IdPrefixes) == 0 {
		return json.Marshal(ri.Name)
	}
	return json.Marshal(resourceDescriptor(ri))
}

func (ri *ResourceItem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*ri = ResourceItem{Name: name}
		return nil
	}

	var d resourceDescriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*ri = ResourceItem(d)
	return nil
}

type CatalogDescriptor struct {
	Type string `json:"type"`
	Id   string `json:"id"`
}

type Manifest struct {
	Id          string              `json:"id"`
	Version     string              `json:"version"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Types       []string            `json:"types"`
	Catalogs    []CatalogDescriptor `json:"catalogs"`
	Resources   []ResourceItem      `json:"resources"`
}

// HasType reports whether t is one of the content types declared by the manifest.
func (m Manifest) HasType(t string) bool {
	for _, mt := range m.Types {
		if mt == t {
			return true
		}
	}
	return false
}

// Clone returns a copy of m that shares no memory with it.
func (m Manifest) Clone() Manifest {
	m.Types = slices.Clone(m.Types)
	m.Catalogs = slices.Clone(m.Catalogs)
	m.Resources = slices.Clone(m.Resources)
	for i := range m.Resources {
		m.Resources[i].Types = slices.Clone(m.Resources[i].Types)
		m.Resources[i].IdPrefixes = slices.Clone(m.Resources[i].IdPrefixes)
	}
	return m
}

type Video struct {
	Season   int    `json:"season"`
	Episode  int    `json:"episode"`
	Id       string `json:"id"`
	Title    string `json:"title"`
	Released string `json:"released"`
}

// MetaDetails holds the optional descriptive fields of a title.
// A nil member is absent and is left out of the encoded meta.
type MetaDetails struct {
	PosterShape   *string  `json:"posterShape,omitempty"`
	Background    *string  `json:"background,omitempty"`
	Logo          *string  `json:"logo,omitempty"`
	Videos        []Video  `json:"videos,omitempty"`
	Description   *string  `json:"description,omitempty"`
	ReleaseInfo   *string  `json:"releaseInfo,omitempty"`
	ImdbRating    *float64 `json:"imdbRating,omitempty"`
	Director      []string `json:"director,omitempty"`
	Cast          []string `json:"cast,omitempty"`
	DvdRelease    *string  `json:"dvdRelease,omitempty"`
	Released      *string  `json:"released,omitempty"`
	InTheaters    *bool    `json:"inTheaters,omitempty"`
	Certification *string  `json:"certification,omitempty"`
	Runtime       *string  `json:"runtime,omitempty"`
	Language      *string  `json:"language,omitempty"`
	Country       *string  `json:"country,omitempty"`
	Awards        *string  `json:"awards,omitempty"`
	Website       *string  `json:"website,omitempty"`
	IsPeered      *bool    `json:"isPeered,omitempty"`
}

// Clone returns a copy of d whose slices and pointed-to values are its own.
func (d MetaDetails) Clone() MetaDetails {
	return MetaDetails{
		PosterShape:   clonePtr(d.PosterShape),
		Background:    clonePtr(d.Background),
		Logo:          clonePtr(d.Logo),
		Videos:        slices.Clone(d.Videos),
		Description:   clonePtr(d.Description),
		ReleaseInfo:   clonePtr(d.ReleaseInfo),
		ImdbRating:    clonePtr(d.ImdbRating),
		Director:      slices.Clone(d.Director),
		Cast:          slices.Clone(d.Cast),
		DvdRelease:    clonePtr(d.DvdRelease),
		Released:      clonePtr(d.Released),
		InTheaters:    clonePtr(d.InTheaters),
		Certification: clonePtr(d.Certification),
		Runtime:       clonePtr(d.Runtime),
		Language:      clonePtr(d.Language),
		Country:       clonePtr(d.Country),
		Awards:        clonePtr(d.Awards),
		Website:       clonePtr(d.Website),
		IsPeered:      clonePtr(d.IsPeered),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// MetaPreview is a catalog entry.
type MetaPreview struct {
	Id     string   `json:"id"`
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	Poster string   `json:"poster"`
}

// MetaItem is the full description of a single title as served by the meta resource.
type MetaItem struct {
	Id     string   `json:"id"`
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	Poster string   `json:"poster"`

	MetaDetails
}

type CatalogResponse struct {
	Metas []MetaPreview `json:"metas"`
}

// MetaResponse carries a nil Meta when the requested title does not exist,
// which encodes as {"meta": null}.
type MetaResponse struct {
	Meta *MetaItem `json:"meta"`
}

type StreamsResponse struct {
	Streams []Stream `json:"streams"`
}

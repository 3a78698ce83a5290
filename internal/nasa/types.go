package nasa

// ItemData is the metadata block of one search result item.
type ItemData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaType   string `json:"media_type"`
}

// Item is one entry of an archive search result. Href points at the item's
// manifest, a flat list of candidate file links requiring a second fetch.
type Item struct {
	Href string     `json:"href"`
	Data []ItemData `json:"data"`
}

// MediaType returns the declared media kind, or "" when metadata is missing.
func (it Item) MediaType() string {
	if len(it.Data) == 0 {
		return ""
	}
	return it.Data[0].MediaType
}

// Title returns the item title, with the archive's placeholder for missing
// metadata.
func (it Item) Title() string {
	if len(it.Data) == 0 || it.Data[0].Title == "" {
		return "Título indisponível"
	}
	return it.Data[0].Title
}

// searchResponse is the archive search envelope.
type searchResponse struct {
	Collection struct {
		Items []Item `json:"items"`
	} `json:"collection"`
}

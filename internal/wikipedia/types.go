package wikipedia

// Image is an image reference as returned by the REST and Action APIs.
type Image struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Summary is the page summary returned by /api/rest_v1/page/summary/{title}.
// Thumbnail and OriginalImage are nil for pages without a lead image.
type Summary struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Extract       string `json:"extract"`
	Thumbnail     *Image `json:"thumbnail,omitempty"`
	OriginalImage *Image `json:"originalimage,omitempty"`
}

// SearchResult is one hit of a list=search query.
type SearchResult struct {
	NS        int    `json:"ns"`
	Title     string `json:"title"`
	PageID    int    `json:"pageid"`
	Snippet   string `json:"snippet"`
	Timestamp string `json:"timestamp"`
}

// PageImage is one page of a prop=pageimages query.
type PageImage struct {
	PageID    int    `json:"pageid"`
	NS        int    `json:"ns"`
	Title     string `json:"title"`
	Missing   bool   `json:"missing"`
	Thumbnail *Image `json:"thumbnail,omitempty"`
	PageImage string `json:"pageimage"`
}

// searchResponse wraps list=search results (formatversion=2).
type searchResponse struct {
	Query struct {
		Search []SearchResult `json:"search"`
	} `json:"query"`
}

// pageImagesResponse wraps prop=pageimages results. With formatversion=2
// pages is an ordered array instead of an object keyed by page id.
type pageImagesResponse struct {
	Query struct {
		Pages []PageImage `json:"pages"`
	} `json:"query"`
}

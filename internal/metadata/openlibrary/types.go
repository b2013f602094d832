package openlibrary

// searchResponse is the wire shape of GET /search.json.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Start    int         `json:"start"`
	Docs     []searchDoc `json:"docs"`
}

// searchDoc is one work in a search response.
type searchDoc struct {
	Key              string   `json:"key"` // "/works/OL82563W"
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverI           int      `json:"cover_i"`
	ISBN             []string `json:"isbn"`
	PagesMedian      int      `json:"number_of_pages_median"`
}

// workResponse is the wire shape of GET /works/{id}.json.
// Description is a tagged union: either a plain string or
// {"type": "/type/text", "value": "..."}.
type workResponse struct {
	Key         string       `json:"key"`
	Title       string       `json:"title"`
	Description any          `json:"description"`
	Subjects    []string     `json:"subjects"`
	Covers      []int        `json:"covers"`
	Authors     []workAuthor `json:"authors"`
}

// workAuthor references an author record by key.
type workAuthor struct {
	Author struct {
		Key string `json:"key"` // "/authors/OL23919A"
	} `json:"author"`
}

// SearchResult is a page of search hits.
type SearchResult struct {
	NumFound int
	Start    int
	Docs     []Doc
}

// Doc is one search hit with the work key normalized to a bare ID.
type Doc struct {
	Key              string // "OL82563W", "/works/" prefix stripped
	Title            string
	AuthorNames      []string
	FirstPublishYear int
	CoverID          int
	ISBNs            []string
	PageCountMedian  int
	CoverURL         string // large cover image URL, empty when no cover
}

// WorkDetail is the normalized detail view of one work.
type WorkDetail struct {
	Key         string // bare work ID
	Title       string
	Description string
	Subjects    []string
	CoverIDs    []int
	AuthorKeys  []string // bare author IDs, "/authors/" prefix stripped
	CoverURL    string   // first cover rendered as a large image URL, if any
}

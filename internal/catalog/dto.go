package catalog

// Typed DTOs for the admin GraphQL responses, decoded at the boundary. A
// decode failure surfaces as UPSTREAM_ERROR instead of a missing-field
// panic further in.

type collectionNode struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type collectionsData struct {
	Collections struct {
		Edges []struct {
			Node collectionNode `json:"node"`
		} `json:"edges"`
	} `json:"collections"`
}

type mediaSource struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Format   string `json:"format"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
}

type mediaNode struct {
	ID               string        `json:"id"`
	Alt              string        `json:"alt"`
	MediaContentType string        `json:"mediaContentType"`
	Preview          *mediaPreview `json:"preview"`
	Sources          []mediaSource `json:"sources"`
}

type mediaPreview struct {
	Image *struct {
		URL string `json:"url"`
	} `json:"image"`
}

func (m mediaNode) previewImageURL() string {
	if m.Preview == nil || m.Preview.Image == nil {
		return ""
	}
	return m.Preview.Image.URL
}

type productNode struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Media  struct {
		Edges []struct {
			Node mediaNode `json:"node"`
		} `json:"edges"`
	} `json:"media"`
}

type collectionProductsData struct {
	Collection *struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"collection"`
}

type productByHandleData struct {
	ProductByHandle *productNode `json:"productByHandle"`
}

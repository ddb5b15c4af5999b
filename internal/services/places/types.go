package places

// NearbySearchResponse represents the Google Places Nearby Search API response
type NearbySearchResponse struct {
	HTMLAttributions []string      `json:"html_attributions"`
	Results          []PlaceResult `json:"results"`
	Status           string        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
}

// PlaceResult represents a single place result from the Places API
type PlaceResult struct {
	BusinessStatus   string    `json:"business_status,omitempty"`
	FormattedAddress string    `json:"formatted_address,omitempty"`
	Geometry         *Geometry `json:"geometry,omitempty"`
	Name             string    `json:"name"`
	Photos           []Photo   `json:"photos,omitempty"`
	PlaceID          string    `json:"place_id"`
	Rating           float64   `json:"rating,omitempty"`
	Reference        string    `json:"reference,omitempty"`
	Types            []string  `json:"types,omitempty"`
	Vicinity         string    `json:"vicinity,omitempty"`
}

// Geometry represents the geometry information of a place
type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
	Viewport *Bounds `json:"viewport,omitempty"`
}

// LatLng represents a geographic coordinate
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents a geographic bounding box
type Bounds struct {
	Northeast *LatLng `json:"northeast,omitempty"`
	Southwest *LatLng `json:"southwest,omitempty"`
}

// Photo represents a place photo reference
type Photo struct {
	Height           int      `json:"height"`
	HTMLAttributions []string `json:"html_attributions"`
	PhotoReference   string   `json:"photo_reference"`
	Width            int      `json:"width"`
}

// AutocompleteResponse represents the Place Autocomplete API response
type AutocompleteResponse struct {
	Predictions  []Prediction `json:"predictions"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// Prediction represents a single autocomplete prediction
type Prediction struct {
	Description          string                `json:"description"`
	PlaceID              string                `json:"place_id"`
	StructuredFormatting *StructuredFormatting `json:"structured_formatting,omitempty"`
	Types                []string              `json:"types,omitempty"`
}

// StructuredFormatting splits a prediction into main and secondary text
type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text,omitempty"`
}

// DetailsResponse represents the Place Details API response
type DetailsResponse struct {
	Result       *PlaceResult `json:"result,omitempty"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

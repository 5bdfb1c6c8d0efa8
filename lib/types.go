package lib

// APIEntity is one recognised entity as returned by the extraction API.
type APIEntity struct {
	Entity    string `json:"entity"`
	Value     string `json:"value"`
	StartChar int    `json:"start_char"`
	EndChar   int    `json:"end_char"`
}

// ExtractionResponse is the extraction API's response for one document.
type ExtractionResponse struct {
	DocumentID    string      `json:"document_id"`
	Filename      string      `json:"filename"`
	OcrNoiseRatio float64     `json:"ocr_noise_ratio"`
	TextLength    int         `json:"text_length"`
	FullText      string      `json:"full_text"`
	Entities      []APIEntity `json:"entities"`
}

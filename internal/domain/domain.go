package domain

// Advertisement is one entry of the list served by GET /get_ads.
// IDs are unique within a single response only.
type Advertisement struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	CTR        float64 `json:"ctr"`
	ImageURL   string  `json:"image_url"`
	TargetPage string  `json:"target_page"`
}

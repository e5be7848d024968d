package entity

// ShopUser links a marketplace seller to their shop
type ShopUser struct {
	ShopID int64 `json:"shop_id"`
	UserID int64 `json:"user_id"`
}

// Shop describes a seller's shop. UserID is filled in locally from the
// ShopUser it was fetched for.
type Shop struct {
	ShopID int64  `json:"shop_id"`
	Name   string `json:"name,omitempty"`
	Icon   string `json:"icon,omitempty"`
	URL    string `json:"url,omitempty"`
	UserID int64  `json:"user_id,omitempty"`
}

// ListingImage holds the thumbnail URLs of a listing image
type ListingImage struct {
	ListingImageID int64  `json:"listing_image_id,omitempty"`
	URL75x75       string `json:"url_75x75"`
	URL170x135     string `json:"url_170x135"`
}

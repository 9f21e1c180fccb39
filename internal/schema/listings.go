package schema

// Column names of the listings export.
const (
	ColID                 = "id"
	ColName               = "name"
	ColHostID             = "host_id"
	ColHostName           = "host_name"
	ColNeighbourhoodGroup = "neighbourhood_group"
	ColNeighbourhood      = "neighbourhood"
	ColLatitude           = "latitude"
	ColLongitude          = "longitude"
	ColRoomType           = "room_type"
	ColPrice              = "price"
	ColMinimumNights      = "minimum_nights"
	ColNumberOfReviews    = "number_of_reviews"
	ColLastReview         = "last_review"
	ColReviewsPerMonth    = "reviews_per_month"
	ColHostListingsCount  = "calculated_host_listings_count"
	ColAvailability365    = "availability_365"
	ColReviewsLTM         = "number_of_reviews_ltm"
	ColLicense            = "license"

	// ColRejectReason is appended to rejected rows only.
	ColRejectReason = "reject_reason"
)

// Placeholders substituted for null text values.
const (
	PlaceholderUnknown      = "Unknown"
	PlaceholderNotAvailable = "Not available"
)

// Listings is the column specification of the short-term-rental listings
// export. Do not modify it at runtime.
var Listings = Contract{
	Name: "listings",
	Fields: []Field{
		{Name: ColID, Kind: KindID},
		{Name: ColName, Kind: KindText, Placeholder: PlaceholderUnknown},
		{Name: ColHostID, Kind: KindID},
		{Name: ColHostName, Kind: KindText, Placeholder: PlaceholderUnknown},
		{Name: ColNeighbourhoodGroup, Kind: KindText, Placeholder: PlaceholderUnknown},
		{Name: ColNeighbourhood, Kind: KindText, Placeholder: PlaceholderUnknown},
		{Name: ColLatitude, Kind: KindCoordinate},
		{Name: ColLongitude, Kind: KindCoordinate},
		{Name: ColRoomType, Kind: KindText, Placeholder: PlaceholderUnknown},
		{Name: ColPrice, Kind: KindCurrency},
		{Name: ColMinimumNights, Kind: KindCount},
		{Name: ColNumberOfReviews, Kind: KindCount},
		{Name: ColLastReview, Kind: KindDate},
		{Name: ColReviewsPerMonth, Kind: KindRate},
		{Name: ColHostListingsCount, Kind: KindCount},
		{Name: ColAvailability365, Kind: KindCount},
		{Name: ColReviewsLTM, Kind: KindCount},
		{Name: ColLicense, Kind: KindText, Placeholder: PlaceholderNotAvailable},
	},
}

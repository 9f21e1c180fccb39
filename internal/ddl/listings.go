package ddl

// Warehouse tables for normalized listings.
const (
	TableHosts     = "hosts"
	TableLocations = "locations"
	TableRoomTypes = "room_types"
	TableListings  = "listings"
)

// Listings returns the warehouse tables in creation order: the three
// dimension tables followed by listings, which references all of them.
func Listings() []TableDef {
	return []TableDef{
		{
			FQN: TableHosts,
			Columns: []ColumnDef{
				{Name: "host_id", SQLType: TypeBigInt, PrimaryKey: true},
				{Name: "host_name", SQLType: TypeText, Nullable: true},
			},
		},
		{
			FQN: TableLocations,
			Columns: []ColumnDef{
				{Name: "location_id", SQLType: TypeInt, PrimaryKey: true, Serial: true},
				{Name: "neighbourhood_group", SQLType: TypeText, Nullable: true},
				{Name: "neighbourhood", SQLType: TypeText, Nullable: true},
				{Name: "latitude", SQLType: TypeDouble, Nullable: true},
				{Name: "longitude", SQLType: TypeDouble, Nullable: true},
			},
		},
		{
			FQN: TableRoomTypes,
			Columns: []ColumnDef{
				{Name: "room_type_id", SQLType: TypeInt, PrimaryKey: true, Serial: true},
				{Name: "room_type", SQLType: TypeText, Nullable: true, Unique: true},
			},
		},
		{
			FQN: TableListings,
			Columns: []ColumnDef{
				{Name: "listing_id", SQLType: TypeBigInt, PrimaryKey: true},
				{Name: "name", SQLType: TypeText, Nullable: true},
				{Name: "host_id", SQLType: TypeBigInt, Nullable: true, References: "hosts(host_id)"},
				{Name: "location_id", SQLType: TypeInt, Nullable: true, References: "locations(location_id)"},
				{Name: "room_type_id", SQLType: TypeInt, Nullable: true, References: "room_types(room_type_id)"},
				{Name: "price", SQLType: TypeNumeric, Nullable: true},
				{Name: "minimum_nights", SQLType: TypeInt, Nullable: true},
				{Name: "number_of_reviews", SQLType: TypeInt, Nullable: true},
				{Name: "last_review", SQLType: TypeDate, Nullable: true},
				{Name: "reviews_per_month", SQLType: TypeNumeric, Nullable: true},
				{Name: "calculated_host_listings_count", SQLType: TypeInt, Nullable: true},
				{Name: "availability_365", SQLType: TypeInt, Nullable: true},
				{Name: "number_of_reviews_ltm", SQLType: TypeInt, Nullable: true},
				{Name: "license", SQLType: TypeText, Nullable: true},
			},
		},
	}
}

// Table returns the definition named fqn from tables.
func Table(tables []TableDef, fqn string) (TableDef, bool) {
	for _, t := range tables {
		if t.FQN == fqn {
			return t, true
		}
	}
	return TableDef{}, false
}

// DropOrder returns tables ordered for DROP: tables holding foreign keys
// first, then the rest in creation order.
func DropOrder(tables []TableDef) []TableDef {
	out := make([]TableDef, 0, len(tables))
	for _, t := range tables {
		if t.dependsOnOthers() {
			out = append(out, t)
		}
	}
	for _, t := range tables {
		if !t.dependsOnOthers() {
			out = append(out, t)
		}
	}
	return out
}

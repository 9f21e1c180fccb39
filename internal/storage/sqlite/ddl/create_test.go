package ddl

import (
	"testing"

	gddl "listingsetl/internal/ddl"
)

func TestCreateTableSQL_RoomTypes(t *testing.T) {
	t.Parallel()

	rt, ok := gddl.Table(gddl.Listings(), gddl.TableRoomTypes)
	if !ok {
		t.Fatalf("room_types table missing")
	}
	got, err := Dialect{}.CreateTableSQL(rt)
	if err != nil {
		t.Fatalf("CreateTableSQL: %v", err)
	}
	want := "CREATE TABLE IF NOT EXISTS \"room_types\" (\n" +
		"  \"room_type_id\" INTEGER NOT NULL,\n" +
		"  \"room_type\" TEXT UNIQUE,\n" +
		"  PRIMARY KEY (\"room_type_id\")\n" +
		");"
	if got != want {
		t.Fatalf("CreateTableSQL =\n%s\nwant:\n%s", got, want)
	}
}

func TestDropTableSQL(t *testing.T) {
	t.Parallel()

	if got, want := (Dialect{}).DropTableSQL("main.listings"), `DROP TABLE IF EXISTS "main"."listings";`; got != want {
		t.Fatalf("DropTableSQL = %q, want %q", got, want)
	}
}

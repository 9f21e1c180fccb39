package ddl

import (
	"strings"
	"testing"

	gddl "listingsetl/internal/ddl"
)

func TestCreateTableSQL_Hosts(t *testing.T) {
	t.Parallel()

	hosts, _ := gddl.Table(gddl.Listings(), gddl.TableHosts)
	got, err := Dialect{}.CreateTableSQL(hosts)
	if err != nil {
		t.Fatalf("CreateTableSQL: %v", err)
	}
	want := "IF OBJECT_ID(N'[hosts]', N'U') IS NULL\nBEGIN\n" +
		"CREATE TABLE [hosts] (\n" +
		"  [host_id] BIGINT NOT NULL,\n" +
		"  [host_name] NVARCHAR(MAX),\n" +
		"  PRIMARY KEY ([host_id])\n" +
		");\nEND;"
	if got != want {
		t.Fatalf("CreateTableSQL =\n%s\nwant:\n%s", got, want)
	}
}

func TestCreateTableSQL_ListingsForeignKeys(t *testing.T) {
	t.Parallel()

	listings, _ := gddl.Table(gddl.Listings(), gddl.TableListings)
	got, err := Dialect{}.CreateTableSQL(listings)
	if err != nil {
		t.Fatalf("CreateTableSQL: %v", err)
	}
	if !strings.Contains(got, "FOREIGN KEY ([location_id]) REFERENCES [locations]([location_id])") {
		t.Fatalf("missing location FK:\n%s", got)
	}
}

func TestCreateTableSQL_InvalidDef(t *testing.T) {
	t.Parallel()

	_, err := Dialect{}.CreateTableSQL(gddl.TableDef{FQN: "t"})
	if err == nil || !strings.Contains(err.Error(), "mssql ddl: at least one column") {
		t.Fatalf("err = %v", err)
	}
}

func TestDropTableSQL(t *testing.T) {
	t.Parallel()

	got := Dialect{}.DropTableSQL("dbo.we]ird")
	want := "IF OBJECT_ID(N'[dbo].[we]]ird]', N'U') IS NOT NULL DROP TABLE [dbo].[we]]ird];"
	if got != want {
		t.Fatalf("DropTableSQL = %q, want %q", got, want)
	}
}

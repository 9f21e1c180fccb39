package ddl

import (
	"testing"

	gddl "listingsetl/internal/ddl"
)

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		col  gddl.ColumnDef
		want string
	}{
		{"serial stays int", gddl.ColumnDef{SQLType: gddl.TypeInt, Serial: true}, "INT"},
		{"int", gddl.ColumnDef{SQLType: gddl.TypeInt}, "INT"},
		{"bigint", gddl.ColumnDef{SQLType: gddl.TypeBigInt}, "BIGINT"},
		{"double", gddl.ColumnDef{SQLType: gddl.TypeDouble}, "FLOAT"},
		{"numeric", gddl.ColumnDef{SQLType: gddl.TypeNumeric}, "DECIMAL(18, 4)"},
		{"date", gddl.ColumnDef{SQLType: gddl.TypeDate}, "DATE"},
		{"text", gddl.ColumnDef{SQLType: gddl.TypeText}, "NVARCHAR(MAX)"},
		{"unique text", gddl.ColumnDef{SQLType: gddl.TypeText, Unique: true}, "NVARCHAR(450)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MapType(tt.col); got != tt.want {
				t.Fatalf("MapType = %q, want %q", got, tt.want)
			}
		})
	}
}

package csv

import (
	"strings"
	"testing"
)

func buildCSV(n int) string {
	var sb strings.Builder
	sb.Grow(n * 160)
	sb.WriteString("id,name,host_id,host_name,neighbourhood_group,neighbourhood,latitude,longitude,room_type,price,minimum_nights,number_of_reviews,last_review,reviews_per_month,calculated_host_listings_count,availability_365,number_of_reviews_ltm,license\n")
	for i := 0; i < n; i++ {
		sb.WriteString(`10,Loft,100,Ana,Manhattan,Harlem,40.7,-73.9,Entire home/apt,"$1,200.50",2,15,2023-01-01,0.5,1,200,3,` + "\n")
	}
	return sb.String()
}

func BenchmarkParse_10k(b *testing.B) {
	in := buildCSV(10000)
	p := NewParser(Options{})

	b.ReportAllocs()
	b.SetBytes(int64(len(in)))
	for i := 0; i < b.N; i++ {
		if _, _, err := p.Parse(strings.NewReader(in)); err != nil {
			b.Fatal(err)
		}
	}
}

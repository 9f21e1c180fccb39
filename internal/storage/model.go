package storage

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"listingsetl/internal/ddl"
	"listingsetl/internal/schema"
	"listingsetl/pkg/records"
)

// DefaultBatchSize is used when LoadListings is given a non-positive size.
const DefaultBatchSize = 5000

// LoadResult summarizes a relational load.
type LoadResult struct {
	Hosts     int64
	Locations int64
	RoomTypes int64
	Loaded    int64 // listings rows written
	Skipped   int64 // rows without a usable listing id
}

// Tables holds the rows for each warehouse table, aligned to the table's
// column order in ddl.Listings.
type Tables struct {
	Hosts     [][]any
	Locations [][]any
	RoomTypes [][]any
	Listings  [][]any
	Skipped   int64
}

// SplitListings splits normalized rows into warehouse tables.
//
//   - hosts are keyed by host_id; the first host_name seen wins. Rows without
//     a host_id reference no host.
//   - room types are keyed by value and numbered from 1 in first-seen order.
//   - locations are keyed by (group, neighbourhood, lat, lon) and numbered
//     from 1 in first-seen order.
//   - rows without a listing id, or repeating one already seen, are skipped.
func SplitListings(rows []records.Record) Tables {
	var (
		out       Tables
		hostSeen  = map[int64]struct{}{}
		roomIDs   = map[string]int64{}
		locIDs    = map[uint64]int64{}
		listingOK = map[int64]struct{}{}
	)

	for _, r := range rows {
		id, ok := r[schema.ColID].(pgtype.Int8)
		if !ok || !id.Valid {
			out.Skipped++
			continue
		}
		if _, dup := listingOK[id.Int64]; dup {
			out.Skipped++
			continue
		}
		listingOK[id.Int64] = struct{}{}

		hostID := SQLValue(r[schema.ColHostID])
		if h, ok := hostID.(int64); ok {
			if _, seen := hostSeen[h]; !seen {
				hostSeen[h] = struct{}{}
				out.Hosts = append(out.Hosts, []any{h, SQLValue(r[schema.ColHostName])})
			}
		}

		roomType := SQLValue(r[schema.ColRoomType])
		roomKey := fmt.Sprint(roomType)
		roomID, seen := roomIDs[roomKey]
		if !seen {
			roomID = int64(len(roomIDs) + 1)
			roomIDs[roomKey] = roomID
			out.RoomTypes = append(out.RoomTypes, []any{roomID, roomType})
		}

		loc := []any{
			SQLValue(r[schema.ColNeighbourhoodGroup]),
			SQLValue(r[schema.ColNeighbourhood]),
			SQLValue(r[schema.ColLatitude]),
			SQLValue(r[schema.ColLongitude]),
		}
		key := locationKey(loc)
		locID, seen := locIDs[key]
		if !seen {
			locID = int64(len(locIDs) + 1)
			locIDs[key] = locID
			out.Locations = append(out.Locations, append([]any{locID}, loc...))
		}

		out.Listings = append(out.Listings, []any{
			id.Int64,
			SQLValue(r[schema.ColName]),
			hostID,
			locID,
			roomID,
			SQLValue(r[schema.ColPrice]),
			SQLValue(r[schema.ColMinimumNights]),
			SQLValue(r[schema.ColNumberOfReviews]),
			SQLValue(r[schema.ColLastReview]),
			SQLValue(r[schema.ColReviewsPerMonth]),
			SQLValue(r[schema.ColHostListingsCount]),
			SQLValue(r[schema.ColAvailability365]),
			SQLValue(r[schema.ColReviewsLTM]),
			SQLValue(r[schema.ColLicense]),
		})
	}
	return out
}

// locationKey hashes the location tuple. Null parts are encoded distinctly
// from the empty string.
func locationKey(parts []any) uint64 {
	var sb strings.Builder
	for _, p := range parts {
		switch t := p.(type) {
		case nil:
			sb.WriteString("\x00null")
		case float64:
			sb.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
		default:
			sb.WriteString(fmt.Sprint(t))
		}
		sb.WriteByte('\x1f')
	}
	return xxh3.HashString(sb.String())
}

// LoadListings writes the accepted batch into the warehouse tables, parents
// first so foreign keys resolve. The tables must already exist.
func LoadListings(ctx context.Context, repo Repository, rows []records.Record, batchSize int) (LoadResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	split := SplitListings(rows)
	res := LoadResult{Skipped: split.Skipped}
	if split.Skipped > 0 {
		log.Printf("load: skipping %d rows without a unique listing id", split.Skipped)
	}

	tables := ddl.Listings()
	steps := []struct {
		table string
		rows  [][]any
		n     *int64
	}{
		{ddl.TableHosts, split.Hosts, &res.Hosts},
		{ddl.TableLocations, split.Locations, &res.Locations},
		{ddl.TableRoomTypes, split.RoomTypes, &res.RoomTypes},
		{ddl.TableListings, split.Listings, &res.Loaded},
	}
	for _, s := range steps {
		def, _ := ddl.Table(tables, s.table)
		n, err := LoadTable(ctx, repo, s.table, def.ColumnNames(), s.rows, batchSize)
		*s.n = n
		if err != nil {
			return res, fmt.Errorf("load %s: %w", s.table, err)
		}
		log.Printf("load: table=%s rows=%d", s.table, n)
	}
	return res, nil
}

// LoadTable streams rows into table through LoadBatches.
func LoadTable(ctx context.Context, repo Repository, table string, columns []string, rows [][]any, batchSize int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	in := make(chan []any, batchSize)

	g.Go(func() error {
		defer close(in)
		for _, row := range rows {
			select {
			case <-gctx.Done():
				return nil
			case in <- row:
			}
		}
		return nil
	})

	var total int64
	g.Go(func() error {
		var err error
		total, err = LoadBatches(gctx, columns, in, batchSize,
			func(ctx context.Context, cols []string, batch [][]any) (int64, error) {
				return repo.CopyFrom(ctx, table, cols, batch)
			})
		return err
	})

	err := g.Wait()
	return total, err
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
)

// QueryKeyPrefix namespaces query page entries within the cache prefix.
const QueryKeyPrefix = "query:"

// SnapshotKeyPrefix is the key prefix shared by every cached page of one
// snapshot.
func SnapshotKeyPrefix(snapshotID string) string {
	return QueryKeyPrefix + snapshotID + ":"
}

// QueryKey returns the cache key for one page of a filtered query against
// the snapshot identified by snapshotID.
//
// Clauses are conjunctive, so their order does not change the result and
// the key is computed over a sorted copy. Keys are grouped under
// SnapshotKeyPrefix so the pages of a superseded snapshot can be dropped
// together.
func QueryKey(snapshotID string, filters []string, page, pageSize int) string {
	sorted := slices.Clone(filters)
	slices.Sort(sorted)

	var b strings.Builder
	b.WriteString(snapshotID)
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(page))
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(pageSize))
	for _, f := range sorted {
		b.WriteByte('\n')
		b.WriteString(strconv.Quote(f))
	}

	hash := sha256.Sum256([]byte(b.String()))
	// 16 bytes keeps keys short and still collision resistant
	return SnapshotKeyPrefix(snapshotID) + hex.EncodeToString(hash[:16])
}

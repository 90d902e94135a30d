// Package stats contains the pure classification helpers shared by the
// reporting engine: difficulty buckets, modality collapsing, month
// labels and the fixed twelve-month axis.  Nothing in this package
// touches the database.
package stats

import "github.com/foodlab/foodlab-api/internal/model"

// Bucket is a named difficulty class used in distribution reports.
type Bucket string

const (
	BucketEasy    Bucket = "FACILE"
	BucketMedium  Bucket = "MEDIO"
	BucketHard    Bucket = "DIFFICILE"
	BucketUnknown Bucket = "SCONOSCIUTO"
)

// DifficultyBuckets lists the buckets every distribution must carry,
// in display order.  BucketUnknown is only reported when it occurs.
var DifficultyBuckets = []Bucket{BucketEasy, BucketMedium, BucketHard}

// BucketDifficulty maps a raw 1..5 difficulty level to its bucket:
// 1-2 FACILE, 3 MEDIO, 4-5 DIFFICILE.  Anything outside 1..5 is
// SCONOSCIUTO.  This single rule applies to every distribution,
// period-scoped or not.
func BucketDifficulty(level int) Bucket {
	switch {
	case level == 1 || level == 2:
		return BucketEasy
	case level == 3:
		return BucketMedium
	case level == 4 || level == 5:
		return BucketHard
	default:
		return BucketUnknown
	}
}

// Modality display keys used in session distributions.
const (
	ModalityKeyOnline   = "Online"
	ModalityKeyInPerson = "Presenza"
	ModalityKeyOther    = "Altro"
)

// ModalityKeys lists the keys every modality distribution must carry.
// ModalityKeyOther is only reported when unexpected values occur.
var ModalityKeys = []string{ModalityKeyOnline, ModalityKeyInPerson}

// CollapseModality maps a raw sessions.modality value to its display
// key.  "presenza" and the legacy synonym "pratica" both collapse to
// the in-person key so that old rows are not split across two buckets.
func CollapseModality(raw string) string {
	switch model.Modality(raw) {
	case model.ModalityOnline:
		return ModalityKeyOnline
	case model.ModalityInPerson, "pratica":
		return ModalityKeyInPerson
	default:
		return ModalityKeyOther
	}
}

// EnsureBuckets guarantees that every key in keys is present in m,
// inserting zero values where missing.  It returns m for chaining.
func EnsureBuckets(m map[string]int, keys ...string) map[string]int {
	if m == nil {
		m = make(map[string]int, len(keys))
	}
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			m[k] = 0
		}
	}
	return m
}

package store

import (
	"crypto/md5"
	"encoding/hex"
)

// ArticleID computes the stable identifier for an article from its title and
// publication-date string. The same (title, date) pair always yields the same
// id, so re-ingesting a feed entry overwrites rather than duplicates.
func ArticleID(title, date string) string {
	sum := md5.Sum([]byte(title + date))
	return hex.EncodeToString(sum[:])
}

package domain

import (
	"fmt"
	"strings"
)

// DetailSK is the constant sort key of a paper detail row.
const DetailSK = "DETAIL"

// MissingDate places papers without a publication timestamp at the very
// start of every date-ordered partition.
const MissingDate = "0000-00-00"

// rangeEndSuffix sorts after any arxiv id, so a BETWEEN upper bound of
// "<date>#zzzzzzz" still includes papers published on the end date itself.
const rangeEndSuffix = "zzzzzzz"

// PaperPK returns the partition key of a paper detail row.
func PaperPK(arxivID string) string { return fmt.Sprintf("PAPER#%s", arxivID) }

// CategoryPK returns the partition key grouping all papers of a category.
func CategoryPK(category string) string { return fmt.Sprintf("CATEGORY#%s", category) }

// AuthorItemPK returns the primary partition key of an author row. It is
// never queried directly; reads go through the author index.
func AuthorItemPK(author string) string { return fmt.Sprintf("AUTHORITEM#%s", author) }

// KeywordItemPK returns the primary partition key of a keyword row.
func KeywordItemPK(keyword string) string { return fmt.Sprintf("KEYWORDITEM#%s", keyword) }

// AuthorGSI returns the author-index partition key. Author names are used
// verbatim: differently cased names are distinct entities.
func AuthorGSI(author string) string { return fmt.Sprintf("AUTHOR#%s", author) }

// KeywordGSI returns the keyword-index partition key. Only this indexed
// value is lower-cased, never the stored payload.
func KeywordGSI(keyword string) string { return fmt.Sprintf("KW#%s", strings.ToLower(keyword)) }

// SortKey embeds the publication date before the id so partitions order
// chronologically and same-day ties break lexicographically on id.
func SortKey(publishedDate, arxivID string) string {
	return fmt.Sprintf("%s#%s", publishedDate, arxivID)
}

// RangeStart is the inclusive lower sort-key bound for a date range.
func RangeStart(date string) string { return date + "#" }

// RangeEnd is the inclusive upper sort-key bound for a date range.
func RangeEnd(date string) string { return date + "#" + rangeEndSuffix }

// PublishedDate reduces an ISO-8601 timestamp to its date part, falling
// back to the sentinel when the timestamp is absent.
func PublishedDate(iso string) string {
	if iso == "" {
		return MissingDate
	}
	if len(iso) < 10 {
		return iso
	}
	return iso[:10]
}

package domain

import "sort"

// Tag is the canonical URI naming one kind of annotation, for example
// "tag:isrd.isi.edu,2016:export". Schema documents are stored under the
// tag's short abbreviation instead of the URI.
type Tag string

const (
	TagGenerated          Tag = "tag:isrd.isi.edu,2016:generated"
	TagImmutable          Tag = "tag:isrd.isi.edu,2016:immutable"
	TagDisplay            Tag = "tag:misd.isi.edu,2015:display"
	TagVisibleColumns     Tag = "tag:isrd.isi.edu,2016:visible-columns"
	TagVisibleForeignKeys Tag = "tag:isrd.isi.edu,2016:visible-foreign-keys"
	TagForeignKey         Tag = "tag:isrd.isi.edu,2016:foreign-key"
	TagTableDisplay       Tag = "tag:isrd.isi.edu,2016:table-display"
	TagTableAlternatives  Tag = "tag:isrd.isi.edu,2016:table-alternatives"
	TagColumnDisplay      Tag = "tag:isrd.isi.edu,2016:column-display"
	TagAsset              Tag = "tag:isrd.isi.edu,2017:asset"
	TagBulkUpload         Tag = "tag:isrd.isi.edu,2017:bulk-upload"
	TagExport             Tag = "tag:isrd.isi.edu,2016:export"
	TagExport2019         Tag = "tag:isrd.isi.edu,2019:export"
	TagChaiseConfig       Tag = "tag:isrd.isi.edu,2019:chaise-config"
	TagSourceDefinitions  Tag = "tag:isrd.isi.edu,2019:source-definitions"
)

// tagRegistry is the closed set of known annotation tags keyed by
// abbreviation. The abbreviation doubles as the schema resource name.
var tagRegistry = map[string]Tag{
	"generated":            TagGenerated,
	"immutable":            TagImmutable,
	"display":              TagDisplay,
	"visible_columns":      TagVisibleColumns,
	"visible_foreign_keys": TagVisibleForeignKeys,
	"foreign_key":          TagForeignKey,
	"table_display":        TagTableDisplay,
	"table_alternatives":   TagTableAlternatives,
	"column_display":       TagColumnDisplay,
	"asset":                TagAsset,
	"bulk_upload":          TagBulkUpload,
	"export":               TagExport,
	"export_2019":          TagExport2019,
	"chaise_config":        TagChaiseConfig,
	"source_definitions":   TagSourceDefinitions,
}

var tagAbbreviations = func() map[Tag]string {
	reverse := make(map[Tag]string, len(tagRegistry))
	for abbrev, tag := range tagRegistry {
		reverse[tag] = abbrev
	}
	return reverse
}()

// Abbreviation returns the registry abbreviation for tag.
func Abbreviation(tag Tag) (string, bool) {
	abbrev, ok := tagAbbreviations[tag]
	return abbrev, ok
}

// TagByAbbreviation returns the tag registered under abbrev.
func TagByAbbreviation(abbrev string) (Tag, bool) {
	tag, ok := tagRegistry[abbrev]
	return tag, ok
}

// KnownTags returns all registered tags ordered by abbreviation.
func KnownTags() []Tag {
	abbrevs := make([]string, 0, len(tagRegistry))
	for abbrev := range tagRegistry {
		abbrevs = append(abbrevs, abbrev)
	}
	sort.Strings(abbrevs)
	tags := make([]Tag, len(abbrevs))
	for i, abbrev := range abbrevs {
		tags[i] = tagRegistry[abbrev]
	}
	return tags
}

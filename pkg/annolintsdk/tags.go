package annolintsdk

import "github.com/catalogkit/annolint/internal/domain"

// Registered annotation tags, re-exported for SDK callers.
const (
	TagGenerated          = domain.TagGenerated
	TagImmutable          = domain.TagImmutable
	TagDisplay            = domain.TagDisplay
	TagVisibleColumns     = domain.TagVisibleColumns
	TagVisibleForeignKeys = domain.TagVisibleForeignKeys
	TagForeignKey         = domain.TagForeignKey
	TagTableDisplay       = domain.TagTableDisplay
	TagTableAlternatives  = domain.TagTableAlternatives
	TagColumnDisplay      = domain.TagColumnDisplay
	TagAsset              = domain.TagAsset
	TagBulkUpload         = domain.TagBulkUpload
	TagExport             = domain.TagExport
	TagExport2019         = domain.TagExport2019
	TagChaiseConfig       = domain.TagChaiseConfig
	TagSourceDefinitions  = domain.TagSourceDefinitions
)

// NewModel constructs an empty model tree for callers assembling a model
// programmatically instead of loading a catalog document.
func NewModel(annotations Annotations) *Model {
	return domain.NewModel(annotations)
}

package domain

// DocumentRecord is a read-only catalog entry from content_repo.
// JSON keys mirror the catalog columns so clients see the same shape
// regardless of which backend served the query.
type DocumentRecord struct {
	Product           string `json:"Product"`
	DocType           string `json:"Doc_type"`
	Title             string `json:"Content_Title"`
	Description       string `json:"Description"`
	GeneratedKeywords string `json:"Generated_Keywords,omitempty"`
	Link              string `json:"Link"`
}

// Field returns the value of a catalog field on the record.
// Unknown fields return an empty string.
func (r *DocumentRecord) Field(f Field) string {
	switch f {
	case FieldProduct:
		return r.Product
	case FieldDocType:
		return r.DocType
	case FieldTitle:
		return r.Title
	case FieldDescription:
		return r.Description
	case FieldKeywords:
		return r.GeneratedKeywords
	case FieldLink:
		return r.Link
	default:
		return ""
	}
}

// Field names a catalog column. Values are the exact column identifiers.
type Field string

const (
	FieldProduct     Field = "Product"
	FieldDocType     Field = "Doc_type"
	FieldTitle       Field = "Content_Title"
	FieldDescription Field = "Description"
	FieldKeywords    Field = "Generated_Keywords"
	FieldLink        Field = "Link"
)

// CatalogTable is the catalog table/collection name
const CatalogTable = "content_repo"

// CatalogFields lists every column in select order
var CatalogFields = []Field{
	FieldProduct,
	FieldDocType,
	FieldTitle,
	FieldDescription,
	FieldKeywords,
	FieldLink,
}

// IsValid reports whether f is a known catalog column.
func (f Field) IsValid() bool {
	for _, known := range CatalogFields {
		if f == known {
			return true
		}
	}
	return false
}

// DocType is a canonical document type label
type DocType string

const (
	DocTypeBrochure      DocType = "Brochure or flyer"
	DocTypeDatasheet     DocType = "Datasheet"
	DocTypePresentation  DocType = "Presentation"
	DocTypeTechnical     DocType = "Technical Document"
	DocTypeCaseStudy     DocType = "Case study"
	DocTypeEbook         DocType = "E-book or guide"
	DocTypeSolutionBrief DocType = "Solution brief"
	DocTypeVideo         DocType = "Video"
	DocTypeComparison    DocType = "Comparison document"
	DocTypeROICalculator DocType = "ROI calculator"
	DocTypeOther         DocType = "Other"
)

// AllDocTypes returns the canonical document types in display order
func AllDocTypes() []DocType {
	return []DocType{
		DocTypeBrochure,
		DocTypeDatasheet,
		DocTypePresentation,
		DocTypeTechnical,
		DocTypeCaseStudy,
		DocTypeEbook,
		DocTypeSolutionBrief,
		DocTypeVideo,
		DocTypeComparison,
		DocTypeROICalculator,
		DocTypeOther,
	}
}

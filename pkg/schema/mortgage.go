package schema

import "github.com/agentstation/docfold/pkg/constants"

// Mortgage returns the built-in schema for security instrument extraction
// (mortgages and deeds of trust), following the extraction checklist the
// upstream service is prompted with.
func Mortgage() *Schema {
	return MustNew(
		&Config{
			DisplayNames: map[string]string{
				"APN_ParcelID":           "APN / Parcel ID",
				"MIN":                    "MIN (Mortgage Identification Number)",
				"ReRecordingInformation": "Re-recording Information",
			},
		},
		Field{Name: "DocumentType", Kind: ScalarText},
		Field{Name: "BorrowerNames", Kind: ListOfText},
		Field{Name: "BorrowerRelationships", Kind: MapTextToEnum},
		Field{Name: "LenderName", Kind: ScalarText},
		Field{Name: "TrusteeName", Kind: ScalarText},
		Field{Name: "TrusteeAddress", Kind: ScalarText},
		Field{Name: "LoanAmount", Kind: ScalarText, Currency: true},
		Field{Name: "PropertyAddress", Kind: ScalarText},
		Field{Name: "DocumentDate", Kind: ScalarText},
		Field{Name: "MaturityDate", Kind: ScalarText},
		Field{Name: "APN_ParcelID", Kind: ScalarText},
		Field{Name: "RecordingStampPresent", Kind: ScalarEnum, Presence: true},
		Field{Name: "RecordingBook", Kind: ScalarText},
		Field{Name: "RecordingPage", Kind: ScalarText},
		Field{Name: "RecordingDocumentNumber", Kind: ScalarText},
		Field{Name: "RecordingDate", Kind: ScalarText},
		Field{Name: "RecordingTime", Kind: ScalarText},
		Field{Name: "ReRecordingInformation", Kind: ScalarText},
		Field{Name: "RecordingCost", Kind: ScalarText, Currency: true, Default: constants.NotListed},
		Field{Name: "PageCount", Kind: ScalarText},
		Field{Name: "MissingPages", Kind: ScalarText},
		Field{Name: "BorrowerSignaturesPresent", Kind: MapTextToEnum},
		Field{Name: "RidersPresent", Kind: ListOfStructured, EntryKey: "Name"},
		Field{Name: "InitialedChangesPresent", Kind: ScalarEnum},
		Field{Name: "MERS_RiderSelected", Kind: ScalarEnum, Presence: true},
		Field{Name: "MERS_RiderSignedAttached", Kind: ScalarEnum, Presence: true},
		Field{Name: "MIN", Kind: ScalarText},
		Field{Name: "LegalDescriptionPresent", Kind: ScalarEnum, Presence: true, DetailField: "LegalDescriptionDetail"},
		Field{Name: "LegalDescriptionDetail", Kind: ScalarText, Sentinels: []string{"legal description is missing"}},
	)
}

package extract

// extractionPrompt instructs the model to read recording fields off a
// mortgage document. The response contract mirrors the mortgage schema:
// scalar answers use "N/A" when a value is absent so the fold treats them
// as uninformative, and structured answers use the exact key names the
// parser expects.
const extractionPrompt = `You are reviewing a scanned mortgage document (deed of trust, mortgage, or similar recorded instrument). Read every page carefully and extract the following information.

Respond with a single JSON object of this exact shape:

{
  "entities": {
    "DocumentType": "...",
    "BorrowerNames": ["..."],
    "BorrowerRelationships": {"<borrower name>": "<relationship text or N/A>"},
    "LenderName": "...",
    "TrusteeName": "...",
    "TrusteeAddress": "...",
    "LoanAmount": "...",
    "PropertyAddress": "...",
    "DocumentDate": "...",
    "MaturityDate": "...",
    "APN_ParcelID": "...",
    "RecordingStampPresent": "Yes|No",
    "RecordingBook": "...",
    "RecordingPage": "...",
    "RecordingDocumentNumber": "...",
    "RecordingDate": "...",
    "RecordingTime": "...",
    "ReRecordingInformation": "...",
    "RecordingCost": "...",
    "PageCount": "...",
    "MissingPages": "...",
    "BorrowerSignaturesPresent": {"<borrower name>": "Yes|No"},
    "RidersPresent": [{"Name": "...", "Signed": "Yes|No", "SignedAttached": "Yes|No"}],
    "InitialedChangesPresent": "Yes|No",
    "MERS_RiderSelected": "Yes|No",
    "MERS_RiderSignedAttached": "Yes|No",
    "MIN": "...",
    "LegalDescriptionPresent": "Yes|No",
    "LegalDescriptionDetail": "..."
  },
  "summary": "One short paragraph describing the document and anything unusual about it."
}

Rules:
- Use "N/A" for any value you cannot find. Never invent values.
- LoanAmount and RecordingCost: digits only, no currency symbols or commas. Use "Not Listed" for RecordingCost when the stamp shows no fee.
- BorrowerNames: every borrower exactly as printed, one entry per person.
- RidersPresent: one entry per rider checkbox that is selected, with Name exactly as printed.
- LegalDescriptionDetail: the first sentence of the legal description, or "Legal description is missing" when the referenced exhibit is not attached.
- PageCount: the number of pages actually present in the file.
- MissingPages: which pages appear to be missing, or "N/A" when none.
- Dates in MM/DD/YYYY form when printed that way; otherwise as printed.
- Output only the JSON object. No markdown, no commentary.`

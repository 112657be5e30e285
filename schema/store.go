package schema

// bolt bucket names
const (
	ReceiptCursorBucket    = "receipt-cursor-bucket"
	ProcessedReceiptBucket = "processed-receipt-bucket"

	ReceiptCursorKey = "last-raw-id"
)

package errors

// MaxRecords is the exclusive upper bound on the declared record count.
const MaxRecords = 10000

// ValidateRecordCount validates the declared record count from the header line.
//
// The validation rules are:
//   - No negative counts
//   - At most MaxRecords-1 records
func ValidateRecordCount(n, line int) error {
	if n < 0 {
		return Validation(line, "record count %d must not be negative", n)
	}
	if n >= MaxRecords {
		return Validation(line, "record count %d exceeds limit (max %d)", n, MaxRecords-1)
	}
	return nil
}

// ValidateReference validates that a parent reference of transaction id names
// the root or a strictly earlier transaction, i.e. lies in [1, id-1].
// side is "left" or "right" and only feeds the message.
func ValidateReference(id int, side string, ref int) error {
	if ref < 1 || ref >= id {
		return Validation(0, "transaction %d: %s reference %d outside [1, %d]", id, side, ref, id-1)
	}
	return nil
}

// ValidatePrecision validates a decimal precision for reported statistics.
func ValidatePrecision(p int) error {
	if p < 0 || p > 10 {
		return New(ErrCodeInvalidInput, "precision %d outside [0, 10]", p)
	}
	return nil
}

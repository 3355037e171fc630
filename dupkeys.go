package oatty

import (
	"io"

	"github.com/oattyio/oatty/internal/jsonscan"
)

// DetectDuplicateKeys scans raw JSON for duplicated object keys. Decoding
// keeps the last occurrence silently, so callers that care run this scan on
// the raw bytes before analysis. maxIssues < 0 means unlimited; 0 disables
// the scan. Malformed input surfaces as a parse_error issue, not an error.
func DetectDuplicateKeys(data []byte, maxIssues int) Issues {
	return fromScanIssues(jsonscan.DetectBytes(data, maxIssues))
}

// DetectDuplicateKeysReader is DetectDuplicateKeys over an io.Reader, which
// it consumes fully.
func DetectDuplicateKeysReader(r io.Reader, maxIssues int) Issues {
	return fromScanIssues(jsonscan.DetectReader(r, maxIssues))
}

func fromScanIssues(si []jsonscan.Issue) Issues {
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: s.Path, Message: s.Message})
	}
	return iss
}

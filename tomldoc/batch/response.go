package batch

import (
	"github.com/tidwall/sjson"
)

const (
	// StatusSuccess marks a response whose batch ran to completion.
	StatusSuccess = "success"
	// StatusError marks a response whose batch failed or could not be parsed.
	StatusError = "error"
)

// Response frames the outcome of one batch as a protocol line:
//
//	{"status":"success","results":["ok",{"a":1}],"output":"..."}
//	{"status":"error","results":["ok"],"message":"operation 1 (add x): ..."}
//
// results holds the entries gathered before any failure; output is present
// only when the document was returned instead of written.
func Response(res Result, err error) ([]byte, error) {
	out := []byte(`{"status":"success","results":[]}`)

	var serr error
	for _, r := range res.Results {
		if out, serr = sjson.SetRawBytes(out, "results.-1", r); serr != nil {
			return nil, serr
		}
	}
	if err != nil {
		if out, serr = sjson.SetBytes(out, "status", StatusError); serr != nil {
			return nil, serr
		}
		if out, serr = sjson.SetBytes(out, "message", err.Error()); serr != nil {
			return nil, serr
		}
	}
	if res.Output != nil {
		if out, serr = sjson.SetBytes(out, "output", *res.Output); serr != nil {
			return nil, serr
		}
	}
	return out, nil
}

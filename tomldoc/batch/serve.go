package batch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/joshuapare/tomlkit/internal/logger"
)

// maxLineSize bounds one protocol line.
const maxLineSize = 64 << 20

// fallbackResponse is written if a response cannot be framed.
var fallbackResponse = []byte(`{"status":"error","results":[],"message":"batch: response framing failed"}`)

// Serve reads one batch per line from r and writes one response line per
// batch to w, applying each batch to the document at path. Blank lines are
// skipped. The document is re-read for every batch, so edits made between
// batches by other programs are seen.
//
// A line that is not a valid operation list, and a batch that fails, both
// produce an error response; the loop continues with the next line. Serve
// returns when r is exhausted, ctx is done, or w fails.
func Serve(ctx context.Context, r io.Reader, w io.Writer, path string, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = logger.L
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	bw := bufio.NewWriter(w)
	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}

		var res Result
		plan, err := ParseJSON(text)
		if err == nil {
			res, err = ApplyFile(ctx, path, plan, opts)
		}
		if err != nil {
			log.Debug("batch failed", "line", line, "error", err)
		}

		resp, ferr := Response(res, err)
		if ferr != nil {
			log.Error("frame response", "line", line, "error", ferr)
			resp = fallbackResponse
		}
		if _, err := bw.Write(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

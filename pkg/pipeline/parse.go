package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/matzehuels/excalimaid/pkg/errors"
	"github.com/matzehuels/excalimaid/pkg/excalidraw"
	"github.com/matzehuels/excalimaid/pkg/observability"
)

// ReadInput loads the document at path after checking that it exists and is
// a regular file.
func ReadInput(path string) ([]byte, error) {
	if err := errors.ValidateInputFile(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadLimited(f)
}

// ReadLimited reads r up to MaxDocumentSize bytes.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	if len(data) > MaxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document exceeds %d bytes", MaxDocumentSize)
	}
	return data, nil
}

// Parse decodes data, reporting syntax errors as INVALID_DOCUMENT.
func Parse(ctx context.Context, data []byte) (excalidraw.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(data))
	start := time.Now()

	doc, err := excalidraw.Parse(data)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidDocument, err, "document is not valid JSON")
	}
	hooks.OnParseComplete(ctx, len(doc.Elements), time.Since(start), err)
	return doc, err
}

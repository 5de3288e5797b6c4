package ports

import (
	"context"
	"io"
)

// ImageStore resuelve un archivo subido a una URL durable. El núcleo trata la URL como opaca.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

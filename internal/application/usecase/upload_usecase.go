package usecase

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// MaxUploadBytes tamaño máximo de una imagen subida.
const MaxUploadBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadUseCase guarda imágenes (productos, fotos de perfil) y devuelve su URL opaca.
type UploadUseCase struct {
	store ports.ImageStore
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(store ports.ImageStore) *UploadUseCase {
	return &UploadUseCase{store: store}
}

// Upload valida tipo y tamaño y delega en el ImageStore.
func (uc *UploadUseCase) Upload(ctx context.Context, p entity.Principal, filename, contentType string, size int64, r io.Reader) (*dto.UploadResponse, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, domain.Invalid("tipo de archivo no permitido: %s", contentType)
	}
	if size <= 0 || size > MaxUploadBytes {
		return nil, domain.Invalid("el archivo debe pesar entre 1 byte y %d MB", MaxUploadBytes>>20)
	}
	if e := strings.ToLower(filepath.Ext(filename)); e != "" && len(e) <= 5 {
		ext = e
	}
	url, err := uc.store.Save(ctx, "upload"+ext, contentType, io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{URL: url}, nil
}

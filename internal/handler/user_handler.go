package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"polyglotCMS/internal/models"
)

type AvatarResponse struct {
	ImageURL string `json:"imageUrl"`
}

func identityFromContext(r *http.Request) (*models.Identity, bool) {
	identity, ok := r.Context().Value("identity").(*models.Identity)
	return identity, ok
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, identity, http.StatusOK)
}

func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := identityFromContext(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой (макс. "+humanize.Bytes(uint64(h.Cfg.MaxUploadSize))+")",
			http.StatusBadRequest)
		return
	}

	// getting the file
	file, header, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// sniffing the real content type, the header is not trusted
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		return
	}

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	if !allowedTypes[mtype.String()] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	// rewind after sniffing
	if _, err := file.Seek(0, 0); err != nil {
		WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		return
	}

	imageURL, err := h.AuthService.UploadAvatar(r.Context(), identity.ID, header.Filename, file, header.Size)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, AvatarResponse{ImageURL: imageURL}, http.StatusOK)
}

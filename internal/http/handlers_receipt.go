package http

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// handleReceiptUpload accepts a receipt photo, validates it is a real image
// within the size limit and returns the receipt field with the data URL
// embedded. The response targets the slot named by the submitted form token,
// so an upload that finishes after the form was reset lands nowhere instead
// of attaching to the wrong entry.
func (s *Server) handleReceiptUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxReceiptBytes+64*1024)
	if err := r.ParseMultipartForm(s.maxReceiptBytes + 64*1024); err != nil {
		slog.WarnContext(r.Context(), "Receipt upload rejected", "error", err)
		PayloadTooLargeError("Image too large (>2MB)").
			TriggerErrorNotification("Image too large (>2MB)").
			Write(w)
		return
	}

	token := sanitizeInput(r.Form.Get("form_token"))

	file, _, err := r.FormFile("receipt")
	if err != nil {
		BadRequestError("No image provided").Write(w)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.ErrorContext(r.Context(), "Receipt read failed", "error", err)
		InternalServerError("Failed to read image").Write(w)
		return
	}
	if int64(len(data)) > s.maxReceiptBytes {
		PayloadTooLargeError("Image too large (>2MB)").
			TriggerErrorNotification("Image too large (>2MB)").
			Write(w)
		return
	}

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.WarnContext(r.Context(), "Receipt is not a decodable image", "error", err)
		UnprocessableEntityError("Unsupported image format").
			TriggerErrorNotification("Unsupported image format").
			Write(w)
		return
	}

	dataURL := "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data)

	slog.InfoContext(r.Context(), "Receipt captured",
		"format", format,
		"bytes", len(data),
		"operation", "receipt")

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "receipt_field", struct {
		Token        string
		InvoiceImage template.URL
	}{Token: token, InvoiceImage: template.URL(dataURL)}); err != nil {
		slog.ErrorContext(r.Context(), "Receipt template failed", "error", err)
		InternalServerError("Error rendering receipt").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerSuccessNotification("Invoice Captured / تم التقاط الفاتورة").
		Header("Content-Type", "text/html; charset=utf-8").
		Body(buf.Bytes()).
		Write(w)
}

// handleReceiptImage serves a stored receipt as raw image bytes, decoded from
// the data URL kept on the transaction.
func (s *Server) handleReceiptImage(w http.ResponseWriter, r *http.Request) {
	id := sanitizeInput(mux.Vars(r)["id"])

	t, ok := s.reader.Get(id)
	if !ok || !t.HasReceipt() {
		http.NotFound(w, r)
		return
	}

	rest, found := strings.CutPrefix(t.InvoiceImage, "data:")
	if !found {
		http.NotFound(w, r)
		return
	}
	contentType, payload, found := strings.Cut(rest, ";base64,")
	if !found || !strings.HasPrefix(contentType, "image/") {
		http.NotFound(w, r)
		return
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		slog.ErrorContext(r.Context(), "Stored receipt is corrupt", "transaction_id", id, "error", err)
		http.Error(w, "corrupt image data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = w.Write(data)
}

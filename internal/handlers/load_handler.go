package handlers

import (
	"io"
	"log"
	"net/http"

	"haulcentral/internal/loadfilter"
	"haulcentral/internal/models"
	"haulcentral/internal/services"
)

const maxDocumentSize = 10 << 20

type LoadHandler struct {
	Service   *services.LoadService
	Documents *services.DocumentService
	ErrorLog  *log.Logger
}

// Board serves GET /loads/board with the filters taken from the query string.
func (h *LoadHandler) Board(w http.ResponseWriter, r *http.Request) {
	spec, err := loadfilter.ParseSpec(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.Service.Board(r.Context(), spec)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoadHandler) RefreshBoard(w http.ResponseWriter, r *http.Request) {
	spec, err := loadfilter.ParseSpec(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.Service.RefreshBoard(r.Context(), spec)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoadHandler) PostLoad(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req models.PostLoadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	load, err := h.Service.PostLoad(r.Context(), userID, req)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, load)
}

func (h *LoadHandler) GetLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	load, err := h.Service.GetLoad(r.Context(), id)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, load)
}

func (h *LoadHandler) MyLoads(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	loads, err := h.Service.ListOwnLoads(r.Context(), userID)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if loads == nil {
		loads = []models.Load{}
	}
	writeJSON(w, http.StatusOK, loads)
}

func (h *LoadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	var req models.UpdateLoadStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	load, err := h.Service.UpdateLoadStatus(r.Context(), userID, id, req.Status)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, load)
}

// UploadDocument accepts a multipart "file" field for a load the caller posted.
func (h *LoadHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize+1<<20)
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxDocumentSize+1))
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	if len(body) > maxDocumentSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds 10MB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(body)
	}

	loadID, err := pathParam(r, "id")
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	doc, err := h.Documents.Upload(r.Context(), userID, loadID, header.Filename, contentType, body)
	if err != nil {
		respondError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

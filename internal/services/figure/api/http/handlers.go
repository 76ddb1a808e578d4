package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/louisbranch/habbohub/internal/platform/imaging"
	"github.com/louisbranch/habbohub/internal/services/figure/service"
)

func (h *Handler) listFamilies(w http.ResponseWriter, r *http.Request) {
	families := h.svc.Families(r.Context())
	out := make([]familyJSON, 0, len(families))
	for _, f := range families {
		out = append(out, familyToJSON(f))
	}
	writeJSON(w, http.StatusOK, map[string]any{"families": out})
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Entries(r.Context(), chi.URLParam(r, "family"), r.URL.Query().Get("gender"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToJSON(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}

func (h *Handler) getPalette(w http.ResponseWriter, r *http.Request) {
	palette, err := h.svc.Palette(r.Context(), chi.URLParam(r, "family"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paletteToJSON(palette))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	f, err := h.svc.Decode(r.Context(), req.Figure, req.Gender)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, figureToJSON(f))
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.svc.Validate(r.Context(), service.ValidateRequest{
		Figure:  req.Figure,
		Gender:  req.Gender,
		Premium: req.Premium,
		Repair:  req.Repair,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:  result.Valid(),
		Figure: figureToJSON(result.Figure),
		Issues: issuesToJSON(result.Issues, resolveLocale(r)),
	})
}

func (h *Handler) defaultFigure(w http.ResponseWriter, r *http.Request) {
	var req genderRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	f, err := h.svc.Default(r.Context(), req.Gender)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, figureToJSON(f))
}

func (h *Handler) random(w http.ResponseWriter, r *http.Request) {
	var req randomRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	f, err := h.svc.Random(r.Context(), req.Gender, req.Premium, req.Seed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, figureToJSON(f))
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ops := make([]service.Op, 0, len(req.Ops))
	for _, op := range req.Ops {
		ops = append(ops, service.Op{
			Kind:           service.OpKind(op.Op),
			Family:         op.Family,
			PartID:         op.PartID,
			Color:          op.Color,
			SecondaryColor: op.SecondaryColor,
		})
	}
	result, err := h.svc.Edit(r.Context(), service.EditRequest{
		Figure:  req.Figure,
		Gender:  req.Gender,
		Premium: req.Premium,
		Ops:     ops,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, figureToJSON(result.Figure))
}

func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	link, err := h.svc.ImageURL(r.Context(), service.ImageRequest{
		Request: imaging.Request{
			Figure:        req.Figure,
			Gender:        req.Gender,
			Direction:     req.Direction,
			HeadDirection: req.HeadDirection,
			Action:        req.Action,
			Gesture:       req.Gesture,
			Size:          req.Size,
			HeadOnly:      req.HeadOnly,
		},
		Canonicalize: req.Canonicalize,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

func (h *Handler) listOwners(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageSize := 0
	if raw := strings.TrimSpace(query.Get("page_size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 0 {
			writeError(w, r, invalidArgument("page_size must be a non-negative integer"))
			return
		}
		pageSize = size
	}
	page, err := h.svc.ListFigures(r.Context(), pageSize, query.Get("page_token"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := listOwnersResponse{Figures: make([]recordJSON, 0, len(page.Records)), NextPageToken: page.NextPageToken}
	for _, record := range page.Records {
		out.Figures = append(out.Figures, recordToJSON(record))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getOwnerFigure(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.GetFigure(r.Context(), chi.URLParam(r, "ownerID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToJSON(record))
}

func (h *Handler) putOwnerFigure(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	record, err := h.svc.SaveFigure(r.Context(), service.SaveRequest{
		OwnerID: chi.URLParam(r, "ownerID"),
		Figure:  req.Figure,
		Gender:  req.Gender,
		Premium: req.Premium,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToJSON(record))
}

func (h *Handler) deleteOwnerFigure(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteFigure(r.Context(), chi.URLParam(r, "ownerID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

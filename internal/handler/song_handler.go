package handlers

import (
	"net/http"
	"strconv"

	"songboard/internal/service"
)

// SearchSongs proxies the song catalog search. At least one of the filter
// query params must be present; offset pages through the results.
func (h *Handlers) SearchSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	offset := 0
	if raw := query.Get("offset"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			WriteError(w, "Offset must be a non-negative number", http.StatusBadRequest)
			return
		}
		offset = value
	}

	params := service.SongSearchParams{
		Track:  query.Get("track"),
		Artist: query.Get("artist"),
		Year:   query.Get("year"),
		Genre:  query.Get("genre"),
		Album:  query.Get("album"),
	}

	result, err := h.SongService.SearchSongs(r.Context(), params, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

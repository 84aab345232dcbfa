package handlers

import (
	"io"
	"net/http"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/importer"
	"ephemera/internal/logger"
)

// importMaxBodyBytes bounds export uploads; browser exports are a few
// megabytes at most.
const importMaxBodyBytes = 16 << 20

type importResponse struct {
	Imported int `json:"imported"`
}

// Import ingests an exported bookmark file (JSON, HTML or YAML). The
// format is taken from the "format" query parameter when present and
// sniffed from the payload otherwise. Per-item failures are skipped;
// the response carries the count that made it in.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, importMaxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		if len(body) == 0 {
			writeError(w, http.StatusBadRequest, "empty import payload")
			return
		}

		candidates, err := importer.Parse(body, importer.Format(r.URL.Query().Get("format")))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		imported := sess.Import(r.Context(), candidates)
		d.Logger.Info("import finished",
			logger.String("owner", sess.OwnerID()),
			logger.Int("candidates", len(candidates)),
			logger.Int("imported", imported))
		writeJSON(w, http.StatusOK, importResponse{Imported: imported})
	}
}

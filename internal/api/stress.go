package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/seantiz/directory/internal/loadgen"
)

// handleStressCPU starts a detached CPU burn and returns immediately.
// A duration that is not an integer is a server error, not a bad request.
func (s *Server) handleStressCPU(w http.ResponseWriter, r *http.Request) {
	seconds := loadgen.DefaultSeconds
	if raw, ok := r.URL.Query()["duration"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw[0]))
		if err != nil {
			s.logger.Error("parse stress duration", "duration", raw[0], "error", err)
			s.writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		seconds = n
	}

	started, err := s.load.Start(seconds)
	if err != nil {
		s.logger.Error("start stress worker", "seconds", seconds, "error", err)
		s.writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	s.writeText(w, http.StatusOK, fmt.Sprintf("CPU stress test started for %d seconds.", started))
}

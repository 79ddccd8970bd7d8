package api

import (
	"fmt"
	"html"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/seantiz/directory/internal/metadata"
)

// handleInfo reports the instance ID and availability zone of the host.
// Each lookup falls back independently when metadata is unreachable.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var instanceID, zone string

	var g errgroup.Group
	g.Go(func() error {
		instanceID = s.metadata.Fetch(r.Context(), metadata.PathInstanceID)
		return nil
	})
	g.Go(func() error {
		zone = s.metadata.Fetch(r.Context(), metadata.PathAvailabilityZone)
		return nil
	})
	_ = g.Wait()

	body := fmt.Sprintf("<h1>Instance Info</h1><p><b>Instance ID:</b> %s</p><p><b>Availability Zone:</b> %s</p>",
		html.EscapeString(instanceID), html.EscapeString(zone))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Error("write response", "error", err)
	}
}
